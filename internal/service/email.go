package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"obrafacil-backend/internal/config"
	"obrafacil-backend/internal/domain"
	"obrafacil-backend/internal/logger"
)

// mailSender is the part of the SendGrid client the notifier uses.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*sendgridResponse, error)
}

type sendgridResponse struct {
	StatusCode int
	Body       string
}

type sendgridClient struct {
	client *sendgrid.Client
}

func (c sendgridClient) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*sendgridResponse, error) {
	resp, err := c.client.SendWithContext(ctx, email)
	if err != nil {
		return nil, err
	}
	return &sendgridResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

type emailService struct {
	sender   mailSender
	from     *mail.Email
	opsEmail *mail.Email
}

// NewEmailService returns the SendGrid notifier when an API key is
// configured and the log-only notifier otherwise.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.SendGridAPIKey == "" || cfg.OpsAddress == "" {
		logger.Warn("SendGrid not configured, emails will only be logged")
		return &logEmailService{}
	}
	return newEmailService(sendgridClient{client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}, cfg)
}

func newEmailService(sender mailSender, cfg config.EmailConfig) *emailService {
	return &emailService{
		sender:   sender,
		from:     mail.NewEmail(cfg.FromName, cfg.FromAddress),
		opsEmail: mail.NewEmail("Operações", cfg.OpsAddress),
	}
}

func (s *emailService) send(ctx context.Context, operation, subject, body string) error {
	logger.ExternalServiceCall("sendgrid", operation, "subject", subject)
	message := mail.NewSingleEmail(s.from, subject, s.opsEmail, body, "")
	resp, err := s.sender.SendWithContext(ctx, message)
	if err == nil && resp.StatusCode >= 300 {
		err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, strings.TrimSpace(resp.Body))
	}
	logger.ExternalServiceResult("sendgrid", operation, err)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", operation, err)
	}
	return nil
}

func contractCreatedMessage(c *domain.Contract) (string, string) {
	subject := fmt.Sprintf("Contrato %s gerado", c.ID)
	body := fmt.Sprintf("O contrato %s foi gerado para o cliente %s.\n\nPedido: %s\nPeríodo: %s a %s\nValor total: R$ %s\n",
		c.ID, c.Client, c.OrderID, c.StartDate.Format("02/01/2006"), c.EndDate.Format("02/01/2006"),
		c.TotalValue.StringFixed(2))
	return subject, body
}

func (s *emailService) SendContractCreated(ctx context.Context, c *domain.Contract) error {
	subject, body := contractCreatedMessage(c)
	return s.send(ctx, "contract_created", subject, body)
}

func (s *emailService) SendContractCompleted(ctx context.Context, c *domain.Contract) error {
	subject := fmt.Sprintf("Contrato %s concluído", c.ID)
	body := fmt.Sprintf("O contrato %s do cliente %s foi concluído.\n", c.ID, c.Client)
	return s.send(ctx, "contract_completed", subject, body)
}

func (s *emailService) SendDeliveryReminder(ctx context.Context, o *domain.RentalOrder) error {
	if o.DeliveryDate == nil {
		return fmt.Errorf("order %s has no delivery date", o.ID)
	}
	subject := fmt.Sprintf("Entrega agendada: pedido %s", o.ID)
	body := fmt.Sprintf("O pedido %s do cliente %s tem entrega agendada para %s.\nEquipamentos: %s\n",
		o.ID, o.Client, o.DeliveryDate.Format("02/01/2006"), itemNames(o))
	return s.send(ctx, "delivery_reminder", subject, body)
}

func (s *emailService) SendQuoteExpiring(ctx context.Context, o *domain.RentalOrder) error {
	subject := fmt.Sprintf("Orçamento %s expira em breve", o.ID)
	body := fmt.Sprintf("O orçamento %s do cliente %s vence em %s e ainda não foi aprovado.\nValor: R$ %s\n",
		o.ID, o.Client, o.ValidUntil.Format("02/01/2006"), o.Total().StringFixed(2))
	return s.send(ctx, "quote_expiring", subject, body)
}

func itemNames(o *domain.RentalOrder) string {
	names := make([]string, 0, len(o.EquipmentItems))
	for _, item := range o.EquipmentItems {
		names = append(names, item.EquipmentName)
	}
	return strings.Join(names, ", ")
}

// logEmailService only logs notifications. Used in development.
type logEmailService struct{}

func (logEmailService) SendContractCreated(ctx context.Context, c *domain.Contract) error {
	logger.InfoContext(ctx, "Email (log only): contract created", "contractID", c.ID, "client", c.Client)
	return nil
}

func (logEmailService) SendContractCompleted(ctx context.Context, c *domain.Contract) error {
	logger.InfoContext(ctx, "Email (log only): contract completed", "contractID", c.ID)
	return nil
}

func (logEmailService) SendDeliveryReminder(ctx context.Context, o *domain.RentalOrder) error {
	logger.InfoContext(ctx, "Email (log only): delivery reminder", "orderID", o.ID, "deliveryDate", o.DeliveryDate)
	return nil
}

func (logEmailService) SendQuoteExpiring(ctx context.Context, o *domain.RentalOrder) error {
	logger.InfoContext(ctx, "Email (log only): quote expiring", "orderID", o.ID, "validUntil", o.ValidUntil)
	return nil
}
