package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/pkg/logger"
)

var ErrNoRecipients = errors.New("email has no recipients")

// Config holds the configuration for the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// SMTPMailer delivers messages over SMTP
type SMTPMailer struct {
	config *Config
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// Send delivers one message to all of its recipients
func (m *SMTPMailer) Send(ctx context.Context, email *entities.EmailMessage) error {
	msg, err := m.buildMessage(email)
	if err != nil {
		return err
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", email.Template, err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(email *entities.EmailMessage) (*mail.Msg, error) {
	if email == nil || len(email.To) == 0 {
		return nil, ErrNoRecipients
	}

	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())
	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}
	msg.Subject(email.Subject)

	if email.HTML != "" {
		msg.SetBodyString(mail.TypeTextHTML, email.HTML)
		if email.Text != "" {
			msg.AddAlternativeString(mail.TypeTextPlain, email.Text)
		}
	} else {
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
	}
	return msg, nil
}

func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		opts = append(opts,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

// ConsoleMailer writes messages to the log instead of sending them
type ConsoleMailer struct {
	from string
}

func NewConsoleMailer(from string) *ConsoleMailer {
	return &ConsoleMailer{from: from}
}

func (m *ConsoleMailer) Send(ctx context.Context, email *entities.EmailMessage) error {
	if email == nil || len(email.To) == 0 {
		return ErrNoRecipients
	}
	logger.Info(ctx, "Email (console)",
		zap.String("from", m.from),
		zap.String("to", strings.Join(email.To, ",")),
		zap.String("subject", email.Subject),
		zap.String("template", email.Template),
		zap.String("text", email.Text),
	)
	return nil
}
