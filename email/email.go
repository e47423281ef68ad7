// Package email delivers transactional mail. The only message the API
// sends today is the password-reset email; the Sender interface keeps
// the provider (SMTP, SendGrid, Mailgun) swappable by configuration.
package email

import "errors"

// Email holds the configuration for all email providers.
type Email struct {
	Provider string          `json:"provider" yaml:"provider"`
	Mailgun  *MailgunConfig  `json:"mailgun" yaml:"mailgun"`
	SendGrid *SendGridConfig `json:"sendgrid" yaml:"sendgrid"`
	SMTP     *SMTPConfig     `json:"smtp" yaml:"smtp"`
}

// Message represents a plain transactional message.
type Message struct {
	Subject string
	Body    string
	HTML    string
}

// Sender is a generic interface for sending emails.
type Sender interface {
	Send(recipientEmail string, msg Message) (string, error)
}

// validateConfig validates the provider-specific configuration.
func validateConfig(config any) error {
	switch c := config.(type) {
	case *MailgunConfig:
		return validateMailgunConfig(c)
	case *SendGridConfig:
		return validateSendGridConfig(c)
	case *SMTPConfig:
		return validateSMTPConfig(c)
	default:
		return errors.New("invalid email configuration")
	}
}

// NewSender returns the Sender for the configured provider.
func NewSender(cfg *Email) (Sender, error) {
	if cfg == nil {
		return nil, errors.New("email configuration is required")
	}
	switch cfg.Provider {
	case "mailgun":
		if err := validateConfig(cfg.Mailgun); err != nil {
			return nil, err
		}
		return &MailgunSender{Config: cfg.Mailgun}, nil
	case "sendgrid":
		if err := validateConfig(cfg.SendGrid); err != nil {
			return nil, err
		}
		return &SendGridSender{Config: cfg.SendGrid}, nil
	case "smtp", "":
		if err := validateConfig(cfg.SMTP); err != nil {
			return nil, err
		}
		return &SMTPSender{Config: cfg.SMTP}, nil
	default:
		return nil, errors.New("unknown email provider: " + cfg.Provider)
	}
}
