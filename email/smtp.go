package email

import (
	"errors"
	"fmt"
	"net/smtp"
)

// SMTPConfig holds the configuration for plain SMTP sending.
type SMTPConfig struct {
	SMTPHost string
	SMTPPort string
	Username string
	Password string
	From     string
}

// SMTPSender implements Sender over net/smtp.
type SMTPSender struct {
	Config *SMTPConfig
}

// Send delivers the message through the configured SMTP relay.
func (s *SMTPSender) Send(recipientEmail string, msg Message) (string, error) {
	auth := smtp.PlainAuth("", s.Config.Username, s.Config.Password, s.Config.SMTPHost)
	to := []string{recipientEmail}
	raw := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s",
		recipientEmail, s.Config.From, msg.Subject, msg.Body))

	addr := fmt.Sprintf("%s:%s", s.Config.SMTPHost, s.Config.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.Config.From, to, raw); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return "", nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil || config.SMTPHost == "" || config.SMTPPort == "" || config.Username == "" || config.Password == "" {
		return errors.New("invalid SMTP configuration")
	}
	return nil
}
