package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/rs/zerolog"
)

// ArticleStore is the slice of article persistence the classifier needs
type ArticleStore interface {
	GetUnprocessed() ([]domain.Article, error)
	MarkProcessed(id int64) error
}

// CompanyStore provides the tracked roster in stable order
type CompanyStore interface {
	GetRoster(exchange string) ([]domain.Company, error)
}

// EventStore persists classifier output
type EventStore interface {
	Insert(ev *domain.ProcessedEvent) error
}

// Service is the entity and sentiment classifier. It turns unprocessed
// articles into processed events and marks every article processed exactly
// once, whether or not an event was produced.
type Service struct {
	articles  ArticleStore
	companies CompanyStore
	eventsDB  EventStore
	events    *events.Manager
	exchange  string
	log       zerolog.Logger
	now       func() time.Time
}

// NewService creates a new classifier service
func NewService(articles ArticleStore, companies CompanyStore, eventStore EventStore, ev *events.Manager, exchange string, log zerolog.Logger) *Service {
	return &Service{
		articles:  articles,
		companies: companies,
		eventsDB:  eventStore,
		events:    ev,
		exchange:  exchange,
		log:       log.With().Str("service", "classify").Logger(),
		now:       time.Now,
	}
}

// Run classifies all unprocessed articles. Per-article failures are logged
// and isolated; a bad article never aborts the batch.
func (s *Service) Run() error {
	articles, err := s.articles.GetUnprocessed()
	if err != nil {
		return fmt.Errorf("failed to load unprocessed articles: %w", err)
	}

	if len(articles) == 0 {
		s.log.Debug().Msg("No unprocessed articles")
		return nil
	}

	roster, err := s.companies.GetRoster(s.exchange)
	if err != nil {
		return fmt.Errorf("failed to load company roster: %w", err)
	}

	s.log.Info().
		Int("articles", len(articles)).
		Int("roster", len(roster)).
		Msg("Starting classification pass")

	classified := 0
	for _, article := range articles {
		if s.classifyOne(article, roster) {
			classified++
		}

		// Marking processed is unconditional. Skipping it for failed
		// articles would reprocess them forever.
		if err := s.articles.MarkProcessed(article.ID); err != nil {
			s.log.Error().Err(err).Int64("article", article.ID).Msg("Failed to mark article processed")
		}
	}

	s.log.Info().
		Int("classified", classified).
		Int("total", len(articles)).
		Msg("Classification pass completed")

	return nil
}

// classifyOne handles a single article and reports whether it produced an
// event
func (s *Service) classifyOne(article domain.Article, roster []domain.Company) bool {
	text := strings.ToLower(article.Title + " " + article.Content)

	company := DetectCompany(text, roster)
	if company == nil {
		return false
	}

	sentiment, hits := AnalyzeSentiment(text)
	if hits == 0 {
		// Neutral with no directional hits carries no information
		return false
	}

	event := domain.ProcessedEvent{
		ArticleID:   article.ID,
		CompanyID:   company.ID,
		Keywords:    ExtractKeywords(text),
		Category:    "GENERAL",
		BaseScore:   hits * 10,
		FinalScore:  hits * 10,
		Sentiment:   sentiment,
		Confidence:  confidence(hits),
		ProcessedAt: s.now().UTC(),
	}

	if err := s.eventsDB.Insert(&event); err != nil {
		s.log.Error().Err(err).Int64("article", article.ID).Msg("Failed to insert processed event")
		return false
	}

	s.events.Emit(events.EventClassified, "classify", map[string]interface{}{
		"article_id": article.ID,
		"company_id": company.ID,
		"sentiment":  string(sentiment),
		"confidence": event.Confidence,
	})

	return true
}

// confidence maps hit count to a 0-100 confidence score
func confidence(hits int) int {
	c := hits * 20
	if c > 100 {
		return 100
	}
	return c
}
