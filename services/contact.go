package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const maxContactMessageLength = 5000

// ContactMessage is a visitor's message from the contact form
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if strings.TrimSpace(m.Email) == "" {
		return errs.NewMissingRequiredFieldError("email")
	}
	if !strings.Contains(m.Email, "@") {
		return errs.NewInvalidFieldError("email", "is not an email address")
	}
	if strings.TrimSpace(m.Message) == "" {
		return errs.NewMissingRequiredFieldError("message")
	}
	if len(m.Message) > maxContactMessageLength {
		return errs.NewInvalidFieldError("message", fmt.Sprintf("must be at most %d characters", maxContactMessageLength))
	}
	return nil
}

// ContactService forwards contact form messages by email and SMS
type ContactService struct {
	mailer     *Mailer
	recipients []string
	sms        *SMSNotifier
}

func NewContactService(mailer *Mailer, recipients []string, sms *SMSNotifier) *ContactService {
	return &ContactService{mailer: mailer, recipients: recipients, sms: sms}
}

func (s *ContactService) emailEnabled() bool {
	return s.mailer.Configured() && len(s.recipients) > 0
}

// Submit delivers msg on every configured channel. It succeeds when at least
// one channel delivered.
func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if !s.emailEnabled() && !s.sms.Configured() {
		return errs.NewServiceNotConfiguredError("contact delivery")
	}

	var (
		g         errgroup.Group
		mu        sync.Mutex
		delivered int
		failures  []error
	)
	record := func(channel string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Error().Err(err).Str("channel", channel).Msg("Failed to deliver contact message")
			failures = append(failures, err)
			return
		}
		delivered++
	}

	if s.emailEnabled() {
		g.Go(func() error {
			subject := fmt.Sprintf("Portfolio contact from %s", strings.TrimSpace(msg.Name))
			record("email", s.mailer.Send(ctx, subject, contactHTML(msg), strings.TrimSpace(msg.Email), s.recipients))
			return nil
		})
	}
	if s.sms.Configured() {
		g.Go(func() error {
			body := fmt.Sprintf("Portfolio contact from %s <%s>: %s", strings.TrimSpace(msg.Name), strings.TrimSpace(msg.Email), truncate(msg.Message, 300))
			record("sms", s.sms.Send(ctx, body))
			return nil
		})
	}
	g.Wait()

	if delivered == 0 {
		return errs.NewUpstreamError("Failed to send message", failures[0])
	}
	return nil
}

func contactHTML(msg ContactMessage) string {
	return fmt.Sprintf("<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>",
		html.EscapeString(strings.TrimSpace(msg.Name)),
		html.EscapeString(strings.TrimSpace(msg.Email)),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
