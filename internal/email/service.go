package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/clinic-portal/internal/config"
)

// Service delivers operational notices to the clinic's notify address.
type Service interface {
	SendNotice(ctx context.Context, subject, body string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	notify string
}

// NewService returns an SMTP-backed notice sender, or nil when no SMTP host
// is configured so callers can treat email as disabled.
func NewService(cfg config.SMTPConfig) Service {
	if cfg.Host == "" || cfg.Notify == "" {
		return nil
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		notify: cfg.Notify,
	}
}

func (s *smtpService) SendNotice(ctx context.Context, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", s.notify)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send notice: %w", err)
	}
	return nil
}
