package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/navitrade/newsflow/internal/clients/feeds"
	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/rs/zerolog"
)

// ArticleStore is the slice of article persistence the gate needs
type ArticleStore interface {
	FingerprintExists(fingerprint string) (bool, error)
	Insert(a *domain.Article) (bool, error)
}

// SourceStore lists configured feed sources
type SourceStore interface {
	GetActiveRSS() ([]domain.NewsSource, error)
}

// FeedFetcher pulls entries from a feed URL
type FeedFetcher interface {
	Fetch(feedURL string) ([]feeds.Item, error)
}

// Service is the deduplicating ingestion gate. It admits only
// previously-unseen articles into the article store; re-ingesting the same
// feed is always safe.
type Service struct {
	articles ArticleStore
	sources  SourceStore
	feeds    FeedFetcher
	events   *events.Manager
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a new ingestion service
func NewService(articles ArticleStore, sources SourceStore, fetcher FeedFetcher, ev *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		articles: articles,
		sources:  sources,
		feeds:    fetcher,
		events:   ev,
		log:      log.With().Str("service", "ingest").Logger(),
		now:      time.Now,
	}
}

// Fingerprint derives the dedup identity of an article from its title and
// URL. Must stay stable: changing it would re-admit the entire history.
func Fingerprint(title, url string) string {
	sum := sha256.Sum256([]byte(title + "-" + url))
	return hex.EncodeToString(sum[:])
}

// IngestBatch runs the dedup gate over a batch of feed items and returns
// the number of newly inserted articles. Each item is independent:
// malformed items are skipped without error, known fingerprints are
// discarded as duplicates.
func (s *Service) IngestBatch(sourceID int64, items []feeds.Item) (int, error) {
	inserted := 0

	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		fingerprint := Fingerprint(item.Title, item.Link)

		exists, err := s.articles.FingerprintExists(fingerprint)
		if err != nil {
			return inserted, fmt.Errorf("failed to check fingerprint: %w", err)
		}
		if exists {
			continue
		}

		article := domain.Article{
			SourceID:    sourceID,
			Title:       item.Title,
			Content:     item.Summary,
			URL:         item.Link,
			Fingerprint: fingerprint,
			PublishedAt: item.Published,
			FetchedAt:   s.now().UTC(),
		}

		ok, err := s.articles.Insert(&article)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert article: %w", err)
		}
		if ok {
			inserted++
		}
	}

	return inserted, nil
}

// Run fetches every active source and ingests its entries. A failing
// source is logged and skipped; the remaining sources still run.
func (s *Service) Run() error {
	sources, err := s.sources.GetActiveRSS()
	if err != nil {
		return fmt.Errorf("failed to load news sources: %w", err)
	}

	if len(sources) == 0 {
		s.log.Warn().Msg("No active RSS sources configured")
		return nil
	}

	s.events.Emit(events.IngestStart, "ingest", map[string]interface{}{
		"sources": len(sources),
	})

	totalInserted := 0
	for _, source := range sources {
		items, err := s.feeds.Fetch(source.BaseURL)
		if err != nil {
			s.log.Warn().Err(err).Str("source", source.Name).Msg("Feed fetch failed, skipping source")
			continue
		}

		inserted, err := s.IngestBatch(source.ID, items)
		if err != nil {
			s.log.Error().Err(err).Str("source", source.Name).Msg("Ingestion failed for source")
			continue
		}

		s.log.Info().
			Str("source", source.Name).
			Int("fetched", len(items)).
			Int("inserted", inserted).
			Msg("Source ingested")

		totalInserted += inserted
	}

	s.events.Emit(events.IngestComplete, "ingest", map[string]interface{}{
		"inserted": totalInserted,
	})

	return nil
}
