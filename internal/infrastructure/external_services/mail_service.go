package external_services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/contract"
	"github.com/mikiasgoitom/BookSocialNetwork/internal/domain/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// smtp attribute
type EmailService struct {
	Host        string
	Port        string
	Username    string
	AppPassword string
	From        string

	templates *template.Template
	sendMail  sendMailFunc
}

// EmailService factory
func NewEmailService(host, port, username, appPassword, from string) (*EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &EmailService{
		Host:        host,
		Port:        port,
		Username:    username,
		AppPassword: appPassword,
		From:        from,
		templates:   tmpl,
		sendMail:    smtp.SendMail,
	}, nil
}

// make sure EmailService implements contract.IEmailService
var _ contract.IEmailService = (*EmailService)(nil)

// Render executes the message's template.
func (es *EmailService) Render(msg entity.EmailMessage) (string, error) {
	var buf bytes.Buffer
	if err := es.templates.ExecuteTemplate(&buf, string(msg.Template), msg); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", msg.Template, err)
	}
	return buf.String(), nil
}

// SendEmail renders msg and delivers it over SMTP.
func (es *EmailService) SendEmail(ctx context.Context, msg entity.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := es.Render(msg)
	if err != nil {
		return err
	}
	raw := []byte(
		fmt.Sprintf(
			"To: %s\r\n"+
				"From: %s\r\n"+
				"Subject: %s\r\n"+
				"MIME-Version: 1.0\r\n"+
				"Content-Type: text/html; charset=UTF-8\r\n"+
				"\r\n"+
				"%s\r\n",
			msg.To, es.From, msg.Subject, body,
		),
	)
	// local relays such as MailDev accept unauthenticated mail
	var auth smtp.Auth
	if es.Username != "" {
		auth = smtp.PlainAuth("", es.Username, es.AppPassword, es.Host)
	}
	addr := fmt.Sprintf("%s:%s", es.Host, es.Port)
	if err := es.sendMail(addr, auth, es.From, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}
