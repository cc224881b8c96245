package alerts

import (
	"fmt"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/rs/zerolog"
)

// Sender is the outbound message transport
type Sender interface {
	Configured() bool
	SendMessage(text string) error
}

// Notifier formats and pushes signal alerts to the configured channel.
// Delivery is fire-and-forget: missing credentials and exhausted retries
// are logged, never propagated, and no retry state survives the call.
type Notifier struct {
	sender Sender
	events *events.Manager
	log    zerolog.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(sender Sender, ev *events.Manager, log zerolog.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		events: ev,
		log:    log.With().Str("service", "alerts").Logger(),
	}
}

// SignalAlert delivers a formatted alert for an emitted signal
func (n *Notifier) SignalAlert(sig domain.Signal, companyName, headline string) {
	if !n.sender.Configured() {
		n.log.Info().Msg("Alert channel not configured, skipping delivery")
		return
	}

	message := FormatSignalMessage(sig, companyName, headline)

	if err := n.sender.SendMessage(message); err != nil {
		n.log.Error().
			Err(err).
			Int64("article", sig.ArticleID).
			Msg("Alert delivery failed, giving up")

		n.events.Emit(events.AlertFailed, "alerts", map[string]interface{}{
			"article_id": sig.ArticleID,
			"error":      err.Error(),
		})
		return
	}

	n.events.Emit(events.AlertSent, "alerts", map[string]interface{}{
		"article_id":  sig.ArticleID,
		"signal_type": string(sig.Type),
	})
}

// FormatSignalMessage renders the outbound alert text
func FormatSignalMessage(sig domain.Signal, companyName, headline string) string {
	return fmt.Sprintf(
		"🚨 *%s SIGNAL*\nCompany: *%s*\nSeverity: *%s*\nScore: *%d*\n\n📰 %s",
		sig.Type, companyName, sig.Severity, sig.Score, headline,
	)
}
