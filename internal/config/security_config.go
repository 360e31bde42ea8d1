package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
	SecurityAdmin                       // Access token with the admin role
)

// EndpointSecurityConfig maps mux route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	"healthz": SecurityPublic,

	"orders.create":   SecurityAccess,
	"orders.list":     SecurityAccess,
	"orders.get":      SecurityAccess,
	"orders.update":   SecurityAccess,
	"orders.delete":   SecurityAdmin,
	"orders.status":   SecurityAccess,
	"orders.payment":  SecurityAccess,
	"orders.delivery": SecurityAccess,
	"orders.contract": SecurityAccess,

	"equipment.create": SecurityAccess,
	"equipment.list":   SecurityAccess,
	"equipment.get":    SecurityAccess,
	"equipment.update": SecurityAccess,
	"equipment.delete": SecurityAdmin,
	"equipment.status": SecurityAccess,
	"equipment.quote":  SecurityAccess,

	"contracts.list":   SecurityAccess,
	"contracts.get":    SecurityAccess,
	"contracts.delete": SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to access for unknown routes
	return SecurityAccess
}
