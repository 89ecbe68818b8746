package email

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/adrianmtzc/campusmatch-backend/internal/config"
)

type Sender interface {
	SendVerification(to, firstName, token string) error
	SendWelcome(to, firstName string) error
}

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	cfg *config.SMTPConfig
}

func NewSMTPSender(cfg *config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendVerification(to, firstName, token string) error {
	subject := "Verifica tu cuenta de CampusMatch"
	body := fmt.Sprintf(
		"Hola %s,\n\nConfirma tu correo institucional con este código:\n\n%s\n\nSi no creaste esta cuenta, ignora este mensaje.\n",
		firstName, token,
	)
	return s.send(to, subject, body)
}

func (s *SMTPSender) SendWelcome(to, firstName string) error {
	subject := "¡Bienvenido a CampusMatch!"
	body := fmt.Sprintf(
		"Hola %s,\n\nTu correo quedó verificado. Completa tu perfil y sube una foto para empezar a hacer match.\n",
		firstName,
	)
	return s.send(to, subject, body)
}

func (s *SMTPSender) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.cfg.From, to, subject, body,
	))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// NoopSender is used when SMTP is not configured (local development); it
// logs what would have been sent.
type NoopSender struct {
	logger *slog.Logger
}

func NewNoopSender(logger *slog.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) SendVerification(to, firstName, token string) error {
	s.logger.Info("verification email skipped (smtp not configured)",
		slog.String("to", to), slog.String("token", token))
	return nil
}

func (s *NoopSender) SendWelcome(to, firstName string) error {
	s.logger.Info("welcome email skipped (smtp not configured)",
		slog.String("to", to))
	return nil
}
