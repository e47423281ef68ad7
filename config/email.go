package config

import (
	"github.com/spf13/viper"

	"github.com/tasksphere/server/email"
)

// Email is the email delivery configuration.
type Email = email.Email

// getEmail returns the email configuration.
func getEmail(v *viper.Viper) *Email {
	return &Email{
		Provider: v.GetString("email.provider"),
		Mailgun: &email.MailgunConfig{
			Key:    v.GetString("email.mailgun.key"),
			Domain: v.GetString("email.mailgun.domain"),
			From:   v.GetString("email.mailgun.from"),
		},
		SendGrid: &email.SendGridConfig{
			Key:  v.GetString("email.sendgrid.key"),
			From: v.GetString("email.sendgrid.from"),
		},
		SMTP: &email.SMTPConfig{
			SMTPHost: v.GetString("email.smtp.host"),
			SMTPPort: v.GetString("email.smtp.port"),
			Username: v.GetString("email.smtp.username"),
			Password: v.GetString("email.smtp.password"),
			From:     v.GetString("email.smtp.from"),
		},
	}
}
