package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osteele/liquid"
	"go.uber.org/zap"
	"legalease.backend/internal/domain/entities"
	"legalease.backend/internal/domain/repositories"
	"legalease.backend/pkg/logger"
	"legalease.backend/pkg/metrics"
)

const defaultSendTimeout = 30 * time.Second

// NotificationConfig holds the values shared by every template
type NotificationConfig struct {
	AdminEmails  []string
	AppURL       string
	ContactEmail string
}

// NotificationService renders templates and hands them to the mailer in the background.
// Failures are logged and counted, never returned.
type NotificationService struct {
	mailer      Mailer
	profileRepo repositories.ProfileRepository
	config      NotificationConfig
	engine      *liquid.Engine
	timeout     time.Duration
	now         func() time.Time
	wg          sync.WaitGroup
}

// NewNotificationService creates a new notification service
func NewNotificationService(mailer Mailer, profileRepo repositories.ProfileRepository, config NotificationConfig) *NotificationService {
	config.AppURL = strings.TrimRight(config.AppURL, "/")
	return &NotificationService{
		mailer:      mailer,
		profileRepo: profileRepo,
		config:      config,
		engine:      liquid.NewEngine(),
		timeout:     defaultSendTimeout,
		now:         time.Now,
	}
}

// Notify emails a single recipient
func (s *NotificationService) Notify(ctx context.Context, template, to string, data map[string]interface{}) {
	s.dispatch(ctx, template, data, func(context.Context) []string {
		if strings.TrimSpace(to) == "" {
			return nil
		}
		return []string{to}
	})
}

// NotifyAdmins emails every admin profile plus the configured admin addresses
func (s *NotificationService) NotifyAdmins(ctx context.Context, template string, data map[string]interface{}) {
	s.dispatch(ctx, template, data, s.adminRecipients)
}

// Wait blocks until in-flight sends finish
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) dispatch(ctx context.Context, template string, data map[string]interface{}, recipients func(context.Context) []string) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				metrics.EmailSent("failed")
				logger.Error(ctx, "Email dispatch panicked", zap.String("template", template), zap.Any("panic", r))
			}
		}()

		sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		to := recipients(sendCtx)
		if len(to) == 0 {
			metrics.EmailSent("skipped")
			logger.Warn(ctx, "No recipients for email", zap.String("template", template))
			return
		}

		msg, err := s.Render(template, data)
		if err != nil {
			metrics.EmailSent("failed")
			logger.Error(ctx, "Failed to render email", zap.String("template", template), zap.Error(err))
			return
		}
		msg.To = to

		if err := s.mailer.Send(sendCtx, msg); err != nil {
			metrics.EmailSent("failed")
			logger.Error(ctx, "Failed to send email",
				zap.String("template", template),
				zap.Strings("to", to),
				zap.Error(err),
			)
			return
		}
		metrics.EmailSent("sent")
	}()
}

func (s *NotificationService) adminRecipients(ctx context.Context) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(email string) {
		key := strings.ToLower(strings.TrimSpace(email))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(email))
	}

	if s.profileRepo != nil {
		admins, err := s.profileRepo.ListByRole(ctx, entities.UserRoleAdmin)
		if err != nil {
			logger.Warn(ctx, "Failed to list admin profiles", zap.Error(err))
		}
		for _, p := range admins {
			add(p.Email)
		}
	}
	for _, email := range s.config.AdminEmails {
		add(email)
	}
	return out
}

// Render builds the subject, HTML and text bodies of a template
func (s *NotificationService) Render(template string, data map[string]interface{}) (*entities.EmailMessage, error) {
	tpl, ok := emailTemplates[template]
	if !ok {
		return nil, fmt.Errorf("unknown email template %q", template)
	}

	bindings := liquid.Bindings{}
	for k, v := range data {
		bindings[k] = v
	}
	bindings["app_url"] = s.config.AppURL
	bindings["contact_email"] = s.config.ContactEmail
	bindings["year"] = s.now().Year()

	render := func(src string) (string, error) {
		out, err := s.engine.ParseAndRenderString(src, bindings)
		if err != nil {
			return "", fmt.Errorf("render %s: %w", template, err)
		}
		return out, nil
	}

	subject, err := render(tpl.Subject)
	if err != nil {
		return nil, err
	}
	title, err := render(tpl.Title)
	if err != nil {
		return nil, err
	}
	content, err := render(tpl.Body)
	if err != nil {
		return nil, err
	}
	text, err := render(tpl.Text)
	if err != nil {
		return nil, err
	}
	actionURL, err := render(tpl.ActionURL)
	if err != nil {
		return nil, err
	}

	html, err := s.engine.ParseAndRenderString(emailLayout, liquid.Bindings{
		"title":         title,
		"content":       content,
		"action_text":   tpl.ActionText,
		"action_url":    actionURL,
		"contact_email": s.config.ContactEmail,
		"year":          s.now().Year(),
	})
	if err != nil {
		return nil, fmt.Errorf("render layout: %w", err)
	}

	return &entities.EmailMessage{
		Subject:  subject,
		HTML:     html,
		Text:     text,
		Template: template,
	}, nil
}

// FormatNaira renders a whole-naira amount as ₦60,000
func FormatNaira(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "₦" + b.String()
}
