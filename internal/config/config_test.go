package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MemoryDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  driver: memory
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 15, cfg.Orders.QuoteExpiryDays)
	assert.False(t, cfg.Orders.StrictTransitions)
	assert.Equal(t, "0 */15 * * * *", cfg.Scheduler.ReconcileEquipment)
	assert.Equal(t, ":8080", cfg.GetServerAddress())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  host: db
  user: app
  database: obrafacil
`)
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("ORDERS_STRICT_TRANSITIONS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.Orders.StrictTransitions)
	assert.Equal(t, "postgres://app:s3cret@db:6543/obrafacil?sslmode=disable", cfg.GetDatabaseConnectionString())
}

func TestValidate(t *testing.T) {
	t.Run("Bad port", func(t *testing.T) {
		cfg := &Config{Database: DatabaseConfig{Driver: DriverMemory}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Postgres requires host", func(t *testing.T) {
		cfg := &Config{Server: ServerConfig{Port: 80}}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database host is required")
	})

	t.Run("Short JWT secret", func(t *testing.T) {
		cfg := &Config{
			Server:   ServerConfig{Port: 80},
			Database: DatabaseConfig{Driver: DriverMemory},
			Auth:     AuthConfig{Enabled: true, JWTSecret: "short"},
		}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Unknown driver", func(t *testing.T) {
		cfg := &Config{Server: ServerConfig{Port: 80}, Database: DatabaseConfig{Driver: "mysql"}}
		assert.Error(t, cfg.Validate())
	})
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("healthz"))
	assert.Equal(t, SecurityAdmin, GetSecurityLevel("orders.delete"))
	assert.Equal(t, SecurityAccess, GetSecurityLevel("something.new"))
}
