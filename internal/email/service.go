// internal/email/service.go
package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service sends transactional email through the Sendgrid API. Callers treat
// delivery as best effort; a failed send never fails the triggering request.
type Service struct {
	client *sendgrid.Client
	from   string
}

func NewService(apiKey, from string) *Service {
	return &Service{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (s *Service) send(to, subject, textContent, htmlContent string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("Maoni", s.from),
		subject,
		mail.NewEmail("", to),
		textContent,
		htmlContent,
	)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via Sendgrid: %w", err)
	}

	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// SendWelcome greets a freshly signed-up manager.
func (s *Service) SendWelcome(to, businessName string) error {
	subject := "Welcome to Maoni"
	text := fmt.Sprintf("Your business %q has been registered. Its invitation codes are ready in your dashboard.", businessName)
	html := fmt.Sprintf("<p>Your business <strong>%s</strong> has been registered. Its invitation codes are ready in your dashboard.</p>", businessName)
	return s.send(to, subject, text, html)
}

// SendBusinessVerified tells the business contact that staff approved their
// verification request.
func (s *Service) SendBusinessVerified(to, businessName string) error {
	subject := "Your business has been verified"
	text := fmt.Sprintf("Good news: %q is now verified on Maoni.", businessName)
	html := fmt.Sprintf("<p>Good news: <strong>%s</strong> is now verified on Maoni.</p>", businessName)
	return s.send(to, subject, text, html)
}
