// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"github.com/pdiddy/digest-engine/pkg/types"
)

// Sender delivers digest emails over SMTP with STARTTLS.
type Sender struct {
	cfg    types.EmailConfig
	logger *slog.Logger
}

// NewSender builds a Sender. A nil logger gets the default.
func NewSender(cfg types.EmailConfig, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sender{cfg: cfg, logger: logger}
}

// Send composes and delivers the digest to the configured recipient. It
// returns an error when no recipient is configured or delivery fails.
func (s *Sender) Send(ctx context.Context, d *types.Digest) error {
	if s.cfg.Recipient == "" {
		return fmt.Errorf("no recipient configured")
	}

	htmlBody, err := ComposeHTML(d)
	if err != nil {
		return err
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.Username); err != nil {
		return fmt.Errorf("setting sender address: %w", err)
	}
	if err := msg.To(s.cfg.Recipient); err != nil {
		return fmt.Errorf("setting recipient address: %w", err)
	}
	msg.Subject(Subject(d))
	msg.SetBodyString(gomail.TypeTextPlain, ComposePlain(d))
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	port := s.cfg.Port
	if port <= 0 {
		port = 587
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending digest email: %w", err)
	}

	s.logger.Info("digest email sent", "recipient", s.cfg.Recipient)
	return nil
}
