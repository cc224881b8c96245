package classify

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/rs/zerolog"
)

// EventRepository handles processed event database operations
type EventRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB, log zerolog.Logger) *EventRepository {
	return &EventRepository{
		db:  db,
		log: log.With().Str("repo", "event").Logger(),
	}
}

// Insert stores a processed event. The article_id UNIQUE constraint keeps
// the at-most-one-event-per-article invariant even if a batch is rerun.
func (r *EventRepository) Insert(ev *domain.ProcessedEvent) error {
	keywords, err := json.Marshal(ev.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	query := `INSERT OR IGNORE INTO processed_events
		(article_id, company_id, detected_keywords, category, base_score, final_score, sentiment, confidence_score, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query,
		ev.ArticleID, ev.CompanyID, string(keywords), ev.Category,
		ev.BaseScore, ev.FinalScore, string(ev.Sentiment), ev.Confidence, ev.ProcessedAt)
	if err != nil {
		return fmt.Errorf("failed to insert processed event: %w", err)
	}

	return nil
}

// GetSince returns events processed at or after the cutoff, oldest first
func (r *EventRepository) GetSince(cutoff time.Time) ([]domain.ProcessedEvent, error) {
	query := `SELECT id, article_id, company_id, detected_keywords, category,
			base_score, final_score, sentiment, confidence_score, processed_at
		FROM processed_events WHERE processed_at >= ? ORDER BY processed_at`

	rows, err := r.db.Query(query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	var eventsOut []domain.ProcessedEvent
	for rows.Next() {
		var ev domain.ProcessedEvent
		var keywords string
		var sentiment string

		if err := rows.Scan(&ev.ID, &ev.ArticleID, &ev.CompanyID, &keywords, &ev.Category,
			&ev.BaseScore, &ev.FinalScore, &sentiment, &ev.Confidence, &ev.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan processed event: %w", err)
		}

		if err := json.Unmarshal([]byte(keywords), &ev.Keywords); err != nil {
			// A bad keywords blob degrades to an empty list rather than
			// dropping the event
			ev.Keywords = nil
		}
		ev.Sentiment = domain.Sentiment(sentiment)

		eventsOut = append(eventsOut, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating processed events: %w", err)
	}

	return eventsOut, nil
}
