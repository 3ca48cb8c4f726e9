package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

type MailerConfig struct {
	SMTPAddress string
	SMTPHost    string
	FromEmail   string
	Password    string
}

type Mailer struct {
	cfg MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

type EmailData struct {
	Name            string
	Message         string
	VerificationURL string
	LogoURL         string
}

func (m *Mailer) SendEmail(emailTo string, emailSubject string, data EmailData, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.FromEmail,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.cfg.FromEmail, m.cfg.Password, m.cfg.SMTPHost)

	if err := smtp.SendMail(m.cfg.SMTPAddress, auth, m.cfg.FromEmail, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
