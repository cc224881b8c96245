package scoring

import (
	"database/sql"
	"fmt"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/rs/zerolog"
)

// SignalRepository handles signal database operations
type SignalRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSignalRepository creates a new signal repository
func NewSignalRepository(db *sql.DB, log zerolog.Logger) *SignalRepository {
	return &SignalRepository{
		db:  db,
		log: log.With().Str("repo", "signal").Logger(),
	}
}

// ExistsForArticle reports whether a signal was ever emitted for this
// article
func (r *SignalRepository) ExistsForArticle(articleID int64) (bool, error) {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM signals WHERE article_id = ?`, articleID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check signal existence: %w", err)
	}
	return true, nil
}

// Insert persists a signal. The article_id UNIQUE constraint backs the
// at-most-one-signal-per-article invariant against concurrent runs; the
// return value reports whether this call actually inserted.
func (r *SignalRepository) Insert(s *domain.Signal) (bool, error) {
	query := `INSERT OR IGNORE INTO signals
		(company_id, article_id, signal_type, severity, signal_score, generated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query,
		s.CompanyID, s.ArticleID, string(s.Type), string(s.Severity),
		s.Score, s.GeneratedAt, s.Active)
	if err != nil {
		return false, fmt.Errorf("failed to insert signal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return affected > 0, nil
}

// List returns the most recent signals, newest first
func (r *SignalRepository) List(limit int) ([]domain.Signal, error) {
	query := `SELECT id, company_id, article_id, signal_type, severity, signal_score, generated_at, is_active
		FROM signals ORDER BY generated_at DESC LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}
	defer rows.Close()

	var signals []domain.Signal
	for rows.Next() {
		var s domain.Signal
		var sigType, severity string

		if err := rows.Scan(&s.ID, &s.CompanyID, &s.ArticleID, &sigType, &severity,
			&s.Score, &s.GeneratedAt, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan signal: %w", err)
		}

		s.Type = domain.SignalType(sigType)
		s.Severity = domain.Severity(severity)
		signals = append(signals, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signals: %w", err)
	}

	return signals, nil
}
