package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"

	"github.com/Tnmoxa/epg-task/internal/config"
	"github.com/Tnmoxa/epg-task/internal/db"
	"github.com/Tnmoxa/epg-task/internal/metrics"
)

const matchSubject = "It's a match!"

// Notifier dispatches mutual-match notifications. Delivery is best-effort:
// a failure never rolls back the rating that triggered it and is observable
// only via logs and metrics.
type Notifier interface {
	NotifyMatch(ctx context.Context, a, b db.User)
}

// Sender is the delivery half of gomail.Dialer, extracted so tests can fake it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends match notifications over SMTP. Messages go through an ants
// pool when one is configured (fire-and-forget); with a nil pool delivery
// runs inline, which tests rely on. A circuit breaker shields the SMTP
// server once deliveries start failing.
type Mailer struct {
	sender  Sender
	from    string
	pool    *ants.Pool
	breaker *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// NewMailer builds a Mailer from config using a real gomail dialer.
func NewMailer(cfg *config.Config, pool *ants.Pool, log *slog.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
	return newMailer(dialer, cfg.SMTP.From, pool, log)
}

// NewMailerWithSender is the injection point for tests.
func NewMailerWithSender(sender Sender, from string, pool *ants.Pool, log *slog.Logger) *Mailer {
	return newMailer(sender, from, pool, log)
}

func newMailer(sender Sender, from string, pool *ants.Pool, log *slog.Logger) *Mailer {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "smtp",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Mailer{
		sender:  sender,
		from:    from,
		pool:    pool,
		breaker: breaker,
		log:     log,
	}
}

// NotifyMatch emits two messages: one to b referencing a, one to a
// referencing b.
func (m *Mailer) NotifyMatch(ctx context.Context, a, b db.User) {
	m.dispatch(b.Email, matchBody(a))
	m.dispatch(a.Email, matchBody(b))
}

func matchBody(liker db.User) string {
	return fmt.Sprintf("You were liked by %s! Member email: %s", liker.FirstName, liker.Email)
}

func (m *Mailer) dispatch(to, body string) {
	task := func() {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", matchSubject)
		msg.SetBody("text/plain", body)

		_, err := m.breaker.Execute(func() (interface{}, error) {
			return nil, m.sender.DialAndSend(msg)
		})
		if err != nil {
			metrics.NotificationFailures.Inc()
			if m.log != nil {
				m.log.Error("match notification failed", "to", to, "err", err)
			}
			return
		}
		metrics.NotificationsSent.Inc()
	}

	if m.pool == nil {
		task()
		return
	}
	if err := m.pool.Submit(task); err != nil {
		metrics.NotificationFailures.Inc()
		if m.log != nil {
			m.log.Error("match notification submit failed", "to", to, "err", err)
		}
	}
}
