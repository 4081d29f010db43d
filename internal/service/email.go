package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"groupmanagement/internal/config"
	"groupmanagement/internal/logger"
)

// Message is a plain-text email ready for delivery.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer delivers a prepared message through one backend.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

type emailService struct {
	mailer      Mailer
	frontendURL string
}

func NewEmailService(mailer Mailer, frontendURL string) EmailService {
	return &emailService{
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (s *emailService) SendAcceptanceNotification(ctx context.Context, email, orgName string) error {
	body := fmt.Sprintf("Hello,\n\nYour access request to the organization '%s' has been accepted.", orgName)
	if s.frontendURL != "" {
		body += fmt.Sprintf("\n\nYou can review your roles at %s", s.frontendURL)
	}
	body += "\n\nBest regards,\nGroup Management"

	msg := &Message{
		To:      []string{email},
		Subject: fmt.Sprintf("Access granted - %s", orgName),
		Body:    body,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send acceptance notification: %w", err)
	}
	return nil
}

func (s *emailService) SendPendingRequestsNotification(ctx context.Context, adminEmails []string, orgName string, count int) error {
	if len(adminEmails) == 0 {
		return nil
	}
	body := fmt.Sprintf("Hello,\n\nThe organization '%s' has %d new access request(s) waiting for review.", orgName, count)
	if s.frontendURL != "" {
		body += fmt.Sprintf("\n\nReview them at %s", s.frontendURL)
	}
	body += "\n\nBest regards,\nGroup Management"

	msg := &Message{
		To:      adminEmails,
		Subject: fmt.Sprintf("New access requests - %s", orgName),
		Body:    body,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send pending requests notification: %w", err)
	}
	return nil
}

type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) Mailer {
	return &smtpMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg *Message) error {
	g := gomail.NewMessage()
	g.SetHeader("From", m.from)
	g.SetHeader("To", msg.To...)
	g.SetHeader("Subject", msg.Subject)
	g.SetBody("text/plain", msg.Body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)

	logger.ExternalServiceCall(ctx, "smtp", "send", "host", m.host, "recipients", len(msg.To))
	err := d.DialAndSend(g)
	logger.ExternalServiceResult(ctx, "smtp", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

type sendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) Mailer {
	return &sendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *sendGridMailer) Send(ctx context.Context, msg *Message) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(m.fromName, m.fromEmail))
	message.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/plain", msg.Body))

	logger.ExternalServiceCall(ctx, "sendgrid", "send", "recipients", len(msg.To))
	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult(ctx, "sendgrid", "send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult(ctx, "sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult(ctx, "sendgrid", "send", nil, "status", response.StatusCode)
	return nil
}

type logMailer struct{}

// NewLogMailer returns a Mailer that only logs messages. Used in development.
func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) Send(ctx context.Context, msg *Message) error {
	logger.InfoContext(ctx, "Email not delivered, log backend active",
		"to", strings.Join(msg.To, ","), "subject", msg.Subject, "body", msg.Body)
	return nil
}

// NewMailerFromConfig picks the mail backend named by cfg.Provider.
func NewMailerFromConfig(cfg config.EmailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.From), nil
	case "sendgrid":
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.From, cfg.FromName), nil
	case "log", "":
		return NewLogMailer(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %q", cfg.Provider)
	}
}
