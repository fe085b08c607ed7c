package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"path/filepath"

	"newsportal/internal/config"
)

// Mailer renders a named template and dispatches the message. Called only
// from queue jobs, never from a request handler directly.
type Mailer interface {
	Send(to, subject, templateName string, data TemplateData) error
}

// TemplateData is what every email template receives.
type TemplateData struct {
	User   string
	Domain string
	Token  string
}

type smtpMailer struct {
	cfg       *config.Config
	templates *template.Template
}

// NewSMTPMailer parses the email templates once at startup.
func NewSMTPMailer(cfg *config.Config, templatesDir string) (Mailer, error) {
	templates, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе шаблонов писем: %w", err)
	}

	return &smtpMailer{
		cfg:       cfg,
		templates: templates,
	}, nil
}

func (m *smtpMailer) Send(to, subject, templateName string, data TemplateData) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("ошибка при рендеринге шаблона %s: %w", templateName, err)
	}

	message := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.SMTP.From, to, subject, body.String(),
	))

	addr := m.cfg.SMTP.Host + ":" + m.cfg.SMTP.Port

	var auth smtp.Auth
	if m.cfg.SMTP.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTP.Username, m.cfg.SMTP.Password, m.cfg.SMTP.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.SMTP.From, []string{to}, message); err != nil {
		return fmt.Errorf("ошибка при отправке письма на %s: %w", to, err)
	}

	return nil
}
