package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/rs/zerolog"
)

// EventStore provides the recent processed events to score
type EventStore interface {
	GetSince(cutoff time.Time) ([]domain.ProcessedEvent, error)
}

// ArticleStore fetches the underlying article text for rescoring
type ArticleStore interface {
	GetByID(id int64) (*domain.Article, error)
}

// CompanyStore resolves company display names for alert formatting
type CompanyStore interface {
	GetByID(id int64) (*domain.Company, error)
}

// SignalStore persists emitted signals
type SignalStore interface {
	ExistsForArticle(articleID int64) (bool, error)
	Insert(s *domain.Signal) (bool, error)
}

// Notifier delivers outbound alerts. Delivery is best effort: the scorer
// never fails because an alert did not go out.
type Notifier interface {
	SignalAlert(sig domain.Signal, companyName, headline string)
}

// Service is the severity and direction scorer plus the emission gate.
// It rescans the trailing window of processed events, scores their source
// text against the impact taxonomy, and emits at most one signal per
// article.
type Service struct {
	eventsDB  EventStore
	articles  ArticleStore
	companies CompanyStore
	signals   SignalStore
	notifier  Notifier
	events    *events.Manager
	window    time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// Config holds scorer service dependencies
type Config struct {
	Events    EventStore
	Articles  ArticleStore
	Companies CompanyStore
	Signals   SignalStore
	Notifier  Notifier
	EventBus  *events.Manager
	Window    time.Duration
	Log       zerolog.Logger
}

// NewService creates a new scorer service
func NewService(cfg Config) *Service {
	return &Service{
		eventsDB:  cfg.Events,
		articles:  cfg.Articles,
		companies: cfg.Companies,
		signals:   cfg.Signals,
		notifier:  cfg.Notifier,
		events:    cfg.EventBus,
		window:    cfg.Window,
		log:       cfg.Log.With().Str("service", "scoring").Logger(),
		now:       time.Now,
	}
}

// Run scores all events inside the trailing window. Per-event failures are
// logged and isolated.
func (s *Service) Run() error {
	cutoff := s.now().UTC().Add(-s.window)

	recent, err := s.eventsDB.GetSince(cutoff)
	if err != nil {
		return fmt.Errorf("failed to load recent events: %w", err)
	}

	s.log.Info().Int("events", len(recent)).Msg("Starting scoring pass")

	emitted := 0
	for _, event := range recent {
		ok, err := s.scoreOne(event)
		if err != nil {
			s.log.Error().Err(err).Int64("article", event.ArticleID).Msg("Scoring failed for event")
			continue
		}
		if ok {
			emitted++
		}
	}

	s.log.Info().Int("signals", emitted).Msg("Scoring pass completed")
	return nil
}

// scoreOne runs the three-outcome decision for a single event and reports
// whether a signal was emitted
func (s *Service) scoreOne(event domain.ProcessedEvent) (bool, error) {
	// Idempotency gate: an article that already has a signal is never
	// scored again, no matter how often the window re-covers it.
	exists, err := s.signals.ExistsForArticle(event.ArticleID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing signal: %w", err)
	}
	if exists {
		return false, nil
	}

	article, err := s.articles.GetByID(event.ArticleID)
	if err != nil {
		return false, fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return false, fmt.Errorf("article %d not found", event.ArticleID)
	}

	text := strings.ToLower(article.Title + " " + article.Content)
	score := Score(text)

	severity := SeverityFor(score)
	if severity == "" {
		return false, nil
	}

	direction := DirectionFor(score)
	if direction == "" {
		// MEDIUM/LOW severities classify but never emit
		return false, nil
	}

	signal := domain.Signal{
		CompanyID:   event.CompanyID,
		ArticleID:   event.ArticleID,
		Type:        direction,
		Severity:    severity,
		Score:       score,
		GeneratedAt: s.now().UTC(),
		Active:      true,
	}

	// Persist before any delivery attempt so a failed alert can never
	// lose or duplicate the signal.
	inserted, err := s.signals.Insert(&signal)
	if err != nil {
		return false, fmt.Errorf("failed to persist signal: %w", err)
	}
	if !inserted {
		// Lost the race to a concurrent run; its signal stands.
		return false, nil
	}

	s.events.Emit(events.SignalGenerated, "scoring", map[string]interface{}{
		"article_id":  event.ArticleID,
		"company_id":  event.CompanyID,
		"signal_type": string(direction),
		"severity":    string(severity),
		"score":       score,
	})

	s.deliver(signal, article.Title)
	return true, nil
}

// deliver enriches the signal and hands it to the notifier. Enrichment
// failures degrade the message rather than blocking it.
func (s *Service) deliver(signal domain.Signal, headline string) {
	companyName := fmt.Sprintf("company #%d", signal.CompanyID)

	company, err := s.companies.GetByID(signal.CompanyID)
	if err != nil {
		s.log.Warn().Err(err).Int64("company", signal.CompanyID).Msg("Failed to resolve company for alert")
	} else if company != nil {
		companyName = company.Name
	}

	s.notifier.SignalAlert(signal, companyName, headline)
}
