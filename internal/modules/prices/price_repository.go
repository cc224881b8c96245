package prices

import (
	"database/sql"
	"fmt"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/rs/zerolog"
)

// PriceRepository handles price snapshot database operations
type PriceRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db *sql.DB, log zerolog.Logger) *PriceRepository {
	return &PriceRepository{
		db:  db,
		log: log.With().Str("repo", "price").Logger(),
	}
}

// Insert stores one price snapshot
func (r *PriceRepository) Insert(p *domain.PriceSnapshot) error {
	query := `INSERT INTO prices
		(company_id, price, open, high, low, volume, change, pchange, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		p.CompanyID, p.Price, p.Open, p.High, p.Low, p.Volume, p.Change, p.ChangePct, p.CapturedAt)
	if err != nil {
		return fmt.Errorf("failed to insert price snapshot: %w", err)
	}

	return nil
}

// GetCloses returns up to limit most recent prices for a company in
// chronological order (oldest first), ready for returns and indicator math
func (r *PriceRepository) GetCloses(companyID int64, limit int) ([]float64, error) {
	query := `SELECT price FROM (
			SELECT price, captured_at FROM prices
			WHERE company_id = ? AND price IS NOT NULL
			ORDER BY captured_at DESC LIMIT ?
		) ORDER BY captured_at ASC`

	rows, err := r.db.Query(query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query closes: %w", err)
	}
	defer rows.Close()

	var closes []float64
	for rows.Next() {
		var price float64
		if err := rows.Scan(&price); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		closes = append(closes, price)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prices: %w", err)
	}

	return closes, nil
}
