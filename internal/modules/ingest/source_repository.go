package ingest

import (
	"database/sql"
	"fmt"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/rs/zerolog"
)

// SourceRepository handles news source database operations
type SourceRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sql.DB, log zerolog.Logger) *SourceRepository {
	return &SourceRepository{
		db:  db,
		log: log.With().Str("repo", "source").Logger(),
	}
}

// GetActiveRSS returns the active RSS sources
func (r *SourceRepository) GetActiveRSS() ([]domain.NewsSource, error) {
	query := `SELECT id, name, base_url, type, is_active
		FROM news_sources WHERE type = 'RSS' AND is_active = 1 ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query news sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.NewsSource
	for rows.Next() {
		var s domain.NewsSource
		if err := rows.Scan(&s.ID, &s.Name, &s.BaseURL, &s.Type, &s.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan news source: %w", err)
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news sources: %w", err)
	}

	return sources, nil
}

// Seed inserts the given sources if their URLs are not present yet.
// Safe to call on every startup.
func (r *SourceRepository) Seed(sources []domain.NewsSource) error {
	for _, s := range sources {
		_, err := r.db.Exec(
			`INSERT OR IGNORE INTO news_sources (name, base_url, type, is_active) VALUES (?, ?, ?, ?)`,
			s.Name, s.BaseURL, s.Type, s.IsActive)
		if err != nil {
			return fmt.Errorf("failed to seed source %s: %w", s.Name, err)
		}
	}
	return nil
}
