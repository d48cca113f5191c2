package service

import (
	"context"
	"fmt"
	"strings"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/pricing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender is the part of the SendGrid client the service uses.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client     mailSender
	fromEmail  string
	fromName   string
	salesInbox string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName, salesInbox string) EmailService {
	return newSendGridEmailService(sendgrid.NewSendClient(apiKey), fromEmail, fromName, salesInbox)
}

func newSendGridEmailService(client mailSender, fromEmail, fromName, salesInbox string) *sendGridEmailService {
	return &sendGridEmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		salesInbox: salesInbox,
	}
}

func (s *sendGridEmailService) SendQuoteConfirmation(ctx context.Context, q *domain.Quote) error {
	subject := fmt.Sprintf("Your quote request %s", q.Reference)
	body := fmt.Sprintf("Hello %s,\n\nThanks for your quote request. Our team will review it and get back to you shortly.\n\n%s\nBest regards,\n%s",
		q.Client.Name, quoteSummary(q), s.fromName)
	return s.send(ctx, q.Client.Email, q.Client.Name, subject, body)
}

func (s *sendGridEmailService) SendQuoteNotification(ctx context.Context, q *domain.Quote) error {
	if s.salesInbox == "" {
		return nil
	}
	subject := fmt.Sprintf("New quote request %s from %s", q.Reference, q.Client.Name)
	body := fmt.Sprintf("Client: %s <%s>\nPhone: %s\nCompany: %s\n\n%s\nNotes:\n%s\n",
		q.Client.Name, q.Client.Email, q.Client.Phone, q.Client.Company, quoteSummary(q), q.Notes)
	return s.send(ctx, s.salesInbox, "", subject, body)
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", response.StatusCode)
	return nil
}

// quoteSummary renders the items and rounded totals as plain text.
func quoteSummary(q *domain.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rental period: %s to %s (%d days)\n", q.StartDate, q.EndDate, q.DurationDays)
	for _, item := range q.Items {
		if item.PricingUnavailable() {
			fmt.Fprintf(&b, "  %d x %s (%s): call for pricing\n", item.Quantity, item.Name, item.SKU)
			continue
		}
		fmt.Fprintf(&b, "  %d x %s (%s): %s\n", item.Quantity, item.Name, item.SKU, pricing.FormatCurrency(item.LineTotal))
	}
	p := q.Pricing
	fmt.Fprintf(&b, "Subtotal: %s\nTax: %s\nTotal: %s\n",
		pricing.FormatCurrency(p.Subtotal), pricing.FormatCurrency(p.Tax), pricing.FormatCurrency(p.Total))
	if len(q.PricingUnavailable) > 0 {
		b.WriteString("Some items need a custom price; the total will be confirmed by our team.\n")
	}
	return b.String()
}

// logEmailService stands in when no SendGrid key is configured.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendQuoteConfirmation(_ context.Context, q *domain.Quote) error {
	logger.Info("Email delivery disabled, skipping quote confirmation", "quoteID", q.ID, "reference", q.Reference)
	return nil
}

func (logEmailService) SendQuoteNotification(_ context.Context, q *domain.Quote) error {
	logger.Info("Email delivery disabled, skipping sales notification", "quoteID", q.ID)
	return nil
}
