package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v3"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
	SendNotificationEmail(ctx context.Context, toEmail, recipientName, title, message string) error
}

type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	emails sender
	config *config.Config
}

// NewService returns a Resend backed mailer. Without an API key every send is
// skipped and logged at debug level.
func NewService(cfg *config.Config) Service {
	s := &service{config: cfg}
	if cfg.ResendAPIKey != "" {
		s.emails = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return s
}

func (s *service) render(templateName string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data any) error {
	if s.emails == nil {
		log.Debug().Str("to", toEmail).Str("subject", subject).Msg("email delivery disabled, skipping")
		return nil
	}

	html, err := s.render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Recruitment Hub <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	if _, err := s.emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Welcome to Recruitment Hub",
		Name:  fullName,
		Link:  strings.TrimRight(s.config.AppURL, "/") + "/login",
	}
	return s.sendEmail(toEmail, "Welcome to Recruitment Hub", "welcome.html", data)
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, recipientName, title, message string) error {
	data := struct {
		Title   string
		Name    string
		Message string
		Link    string
	}{
		Title:   title,
		Name:    recipientName,
		Message: message,
		Link:    strings.TrimRight(s.config.AppURL, "/") + "/dashboard",
	}
	return s.sendEmail(toEmail, title+" - Recruitment Hub", "notification.html", data)
}
