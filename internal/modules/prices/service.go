package prices

import (
	"fmt"
	"strings"
	"time"

	"github.com/navitrade/newsflow/internal/clients/yahoo"
	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/navitrade/newsflow/pkg/formulas"
	"github.com/rs/zerolog"
)

// batchSize keeps quote requests small enough that the upstream endpoint
// does not rate-limit them
const batchSize = 50

// QuoteClient fetches market quotes for Yahoo-suffixed symbols
type QuoteClient interface {
	GetQuotes(symbols []string) ([]yahoo.Quote, error)
}

// CompanyStore lists the roster whose prices are tracked
type CompanyStore interface {
	GetRoster(exchange string) ([]domain.Company, error)
}

// PriceStore persists and reads snapshots
type PriceStore interface {
	Insert(p *domain.PriceSnapshot) error
	GetCloses(companyID int64, limit int) ([]float64, error)
}

// CompanyStats is the derived view over a company's recent snapshots
type CompanyStats struct {
	Symbol               string   `json:"symbol"`
	Samples              int      `json:"samples"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
	RSI14                *float64 `json:"rsi_14,omitempty"`
}

// SyncService captures price snapshots for the tracked universe
type SyncService struct {
	exchange  string
	quotes    QuoteClient
	companies CompanyStore
	prices    PriceStore
	events    *events.Manager
	log       zerolog.Logger
	sleep     func(time.Duration)
	now       func() time.Time
}

// NewSyncService creates a new price sync service
func NewSyncService(exchange string, quotes QuoteClient, companies CompanyStore, prices PriceStore, ev *events.Manager, log zerolog.Logger) *SyncService {
	return &SyncService{
		exchange:  exchange,
		quotes:    quotes,
		companies: companies,
		prices:    prices,
		events:    ev,
		log:       log.With().Str("service", "price_sync").Logger(),
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Sync fetches quotes for the whole roster in batches and stores one
// snapshot per returned quote. Empty or failed batches are skipped, not
// fatal.
func (s *SyncService) Sync() (int, error) {
	roster, err := s.companies.GetRoster(s.exchange)
	if err != nil {
		return 0, fmt.Errorf("failed to load roster: %w", err)
	}

	if len(roster) == 0 {
		s.log.Warn().Msg("Roster empty, nothing to sync")
		return 0, nil
	}

	suffix := yahoo.ExchangeSuffix(s.exchange)
	bySymbol := make(map[string]int64, len(roster))
	symbols := make([]string, 0, len(roster))
	for _, c := range roster {
		bySymbol[c.Symbol] = c.ID
		symbols = append(symbols, c.Symbol+suffix)
	}

	captured := s.now().UTC()
	stored := 0

	for start := 0; start < len(symbols); start += batchSize {
		end := start + batchSize
		if end > len(symbols) {
			end = len(symbols)
		}

		quotes, err := s.quotes.GetQuotes(symbols[start:end])
		if err != nil {
			s.log.Warn().Err(err).Int("batch_start", start).Msg("Quote batch failed, skipping")
			continue
		}

		for _, q := range quotes {
			companyID, ok := bySymbol[strings.TrimSuffix(q.Symbol, suffix)]
			if !ok {
				continue
			}

			snapshot := domain.PriceSnapshot{
				CompanyID:  companyID,
				Price:      q.Price,
				Open:       q.Open,
				High:       q.High,
				Low:        q.Low,
				Volume:     q.Volume,
				Change:     q.Change,
				ChangePct:  q.ChangePct,
				CapturedAt: captured,
			}

			if err := s.prices.Insert(&snapshot); err != nil {
				s.log.Warn().Err(err).Str("symbol", q.Symbol).Msg("Failed to store snapshot")
				continue
			}
			stored++
		}

		// Stay under the quote endpoint's rate limit
		if end < len(symbols) {
			s.sleep(time.Second)
		}
	}

	s.events.Emit(events.PricesSynced, "prices", map[string]interface{}{
		"exchange": s.exchange,
		"stored":   stored,
	})

	s.log.Info().Int("stored", stored).Msg("Price snapshot sync completed")
	return stored, nil
}

// Stats derives volatility and RSI from a company's recent snapshots
func (s *SyncService) Stats(company domain.Company) (*CompanyStats, error) {
	closes, err := s.prices.GetCloses(company.ID, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to load closes: %w", err)
	}

	stats := &CompanyStats{
		Symbol:  company.Symbol,
		Samples: len(closes),
	}

	if len(closes) >= 2 {
		returns := formulas.CalculateReturns(closes)
		stats.AnnualizedVolatility = formulas.AnnualizedVolatility(returns)
	}

	stats.RSI14 = formulas.CalculateRSI(closes, 14)

	return stats, nil
}
