package universe

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/navitrade/newsflow/internal/domain"
	"github.com/rs/zerolog"
)

// CompanyRepository handles company database operations
type CompanyRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *sql.DB, log zerolog.Logger) *CompanyRepository {
	return &CompanyRepository{
		db:  db,
		log: log.With().Str("repo", "company").Logger(),
	}
}

// GetRoster returns the listed companies for an exchange in insertion order.
// Roster order is the entity detection tie-break: the first company whose
// name or symbol appears in an article's text wins, so the ordering here
// must be stable across calls.
func (r *CompanyRepository) GetRoster(exchange string) ([]domain.Company, error) {
	query := `SELECT id, symbol, name, COALESCE(isin, ''), exchange, is_listed
		FROM companies WHERE exchange = ? AND is_listed = 1 ORDER BY id`

	rows, err := r.db.Query(query, exchange)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Symbol, &c.Name, &c.ISIN, &c.Exchange, &c.IsListed); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return companies, nil
}

// GetByID returns a company by id, or nil when not found
func (r *CompanyRepository) GetByID(id int64) (*domain.Company, error) {
	query := `SELECT id, symbol, name, COALESCE(isin, ''), exchange, is_listed
		FROM companies WHERE id = ?`

	var c domain.Company
	err := r.db.QueryRow(query, id).Scan(&c.ID, &c.Symbol, &c.Name, &c.ISIN, &c.Exchange, &c.IsListed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query company by id: %w", err)
	}

	return &c, nil
}

// GetBySymbol returns a company by ticker symbol, or nil when not found
func (r *CompanyRepository) GetBySymbol(symbol string) (*domain.Company, error) {
	query := `SELECT id, symbol, name, COALESCE(isin, ''), exchange, is_listed
		FROM companies WHERE symbol = ?`

	var c domain.Company
	err := r.db.QueryRow(query, strings.ToUpper(strings.TrimSpace(symbol))).
		Scan(&c.ID, &c.Symbol, &c.Name, &c.ISIN, &c.Exchange, &c.IsListed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query company by symbol: %w", err)
	}

	return &c, nil
}

// Upsert inserts or refreshes a company keyed on its unique symbol
func (r *CompanyRepository) Upsert(c domain.Company) error {
	query := `INSERT INTO companies (symbol, name, isin, exchange, is_listed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			name = excluded.name,
			isin = excluded.isin,
			exchange = excluded.exchange,
			is_listed = excluded.is_listed`

	_, err := r.db.Exec(query, c.Symbol, c.Name, c.ISIN, c.Exchange, c.IsListed)
	if err != nil {
		return fmt.Errorf("failed to upsert company %s: %w", c.Symbol, err)
	}

	return nil
}

// Count returns the number of listed companies for an exchange
func (r *CompanyRepository) Count(exchange string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM companies WHERE exchange = ? AND is_listed = 1`, exchange).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}
