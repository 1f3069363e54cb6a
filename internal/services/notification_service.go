package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/smtp"
	"sync"
	"text/template"

	"assetra/internal/models"
)

// NotificationService delivers transactional email to users. With no SMTP
// host configured it degrades to logging the message, which keeps local
// development and tests free of a mail server.
type NotificationService interface {
	SendEmail(ctx context.Context, recipient, subject, body string) error
	SendConfirmationEmail(ctx context.Context, recipient, confirmURL string) error
	SendPasswordResetEmail(ctx context.Context, recipient, resetURL string) error
	SendRequestDecision(ctx context.Context, recipient string, request *models.AssetRequest) error
	SendStaleRequestReminder(ctx context.Context, recipient string, requests []*models.AssetRequest) error
}

const confirmationEmailTemplate = `Welcome!

Please confirm your email address by visiting the link below:

{{.ConfirmURL}}

The link expires in 24 hours. If you did not sign up, ignore this message.
`

const passwordResetEmailTemplate = `A password reset was requested for your account.

Reset your password by visiting the link below:

{{.ResetURL}}

The link expires in 1 hour. If you did not request a reset, ignore this message.
`

const requestDecisionEmailTemplate = `Your asset request has been {{.Status}}.

Request: {{.Description}}

{{if .Approved}}An asset manager will follow up with an assignment.{{else}}Contact your asset manager if you have questions.{{end}}
`

const staleRequestReminderTemplate = `The following asset requests have been pending for a while:

{{range .Requests}}- {{.Description}} (submitted {{.CreatedAt.Format "2006-01-02"}})
{{end}}
Please review them.
`

type notificationService struct {
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
	from     string

	mu        sync.Mutex
	templates map[string]*template.Template
}

// NewNotificationService builds the mailer. Leave smtpHost empty to run in
// log-only mode.
func NewNotificationService(smtpHost, smtpPort, smtpUser, smtpPass, from string) NotificationService {
	return &notificationService{
		smtpHost:  smtpHost,
		smtpPort:  smtpPort,
		smtpUser:  smtpUser,
		smtpPass:  smtpPass,
		from:      from,
		templates: make(map[string]*template.Template),
	}
}

func (s *notificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	if s.smtpHost == "" {
		log.Printf("[EMAIL] To=%s, Subject=%s, Body=%s", recipient, subject, body)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, recipient, subject, body)
	addr := s.smtpHost + ":" + s.smtpPort
	var auth smtp.Auth
	if s.smtpUser != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}
	if err := smtp.SendMail(addr, auth, s.from, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	return nil
}

func (s *notificationService) SendConfirmationEmail(ctx context.Context, recipient, confirmURL string) error {
	body, err := s.render("confirmation", confirmationEmailTemplate, map[string]any{"ConfirmURL": confirmURL})
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, recipient, "Confirm your email address", body)
}

func (s *notificationService) SendPasswordResetEmail(ctx context.Context, recipient, resetURL string) error {
	body, err := s.render("password_reset", passwordResetEmailTemplate, map[string]any{"ResetURL": resetURL})
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, recipient, "Reset your password", body)
}

func (s *notificationService) SendRequestDecision(ctx context.Context, recipient string, request *models.AssetRequest) error {
	body, err := s.render("request_decision", requestDecisionEmailTemplate, map[string]any{
		"Status":      request.Status,
		"Description": request.Description,
		"Approved":    request.Status == models.RequestApproved,
	})
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, recipient, fmt.Sprintf("Asset request %s", request.Status), body)
}

func (s *notificationService) SendStaleRequestReminder(ctx context.Context, recipient string, requests []*models.AssetRequest) error {
	if len(requests) == 0 {
		return nil
	}
	body, err := s.render("stale_requests", staleRequestReminderTemplate, map[string]any{"Requests": requests})
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, recipient, "Pending asset requests need review", body)
}

// render parses the named template once and caches it.
func (s *notificationService) render(name, text string, data map[string]any) (string, error) {
	s.mu.Lock()
	tmpl, ok := s.templates[name]
	if !ok {
		var err error
		tmpl, err = template.New(name).Parse(text)
		if err != nil {
			s.mu.Unlock()
			return "", fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		s.templates[name] = tmpl
	}
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
