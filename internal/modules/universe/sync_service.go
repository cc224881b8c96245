package universe

import (
	"fmt"

	"github.com/navitrade/newsflow/internal/clients/nse"
	"github.com/navitrade/newsflow/internal/domain"
	"github.com/navitrade/newsflow/internal/events"
	"github.com/rs/zerolog"
)

// EquityLister fetches the master equity list from the exchange
type EquityLister interface {
	FetchEquities() ([]nse.Equity, error)
}

// CompanyWriter persists roster entries
type CompanyWriter interface {
	Upsert(c domain.Company) error
}

// SyncService refreshes the tracked company universe from the NSE master
// list. The pipeline itself never writes companies; this service is the
// single writer.
type SyncService struct {
	exchange  string
	lister    EquityLister
	companies CompanyWriter
	events    *events.Manager
	log       zerolog.Logger
}

// NewSyncService creates a new universe sync service
func NewSyncService(exchange string, lister EquityLister, companies CompanyWriter, ev *events.Manager, log zerolog.Logger) *SyncService {
	return &SyncService{
		exchange:  exchange,
		lister:    lister,
		companies: companies,
		events:    ev,
		log:       log.With().Str("service", "universe_sync").Logger(),
	}
}

// Sync fetches the master list and upserts each equity. A failed upsert
// skips that row only; the sync continues and reports how many rows stuck.
func (s *SyncService) Sync() (int, error) {
	equities, err := s.lister.FetchEquities()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch equity list: %w", err)
	}

	s.log.Info().Int("equities", len(equities)).Msg("Fetched master equity list")

	synced := 0
	for _, eq := range equities {
		if eq.Symbol == "" {
			continue
		}

		company := domain.Company{
			Symbol:   eq.Symbol,
			Name:     eq.Name,
			ISIN:     eq.ISIN,
			Exchange: s.exchange,
			IsListed: true,
		}

		if err := s.companies.Upsert(company); err != nil {
			s.log.Warn().Err(err).Str("symbol", eq.Symbol).Msg("Failed to upsert company")
			continue
		}
		synced++
	}

	s.events.Emit(events.UniverseSynced, "universe", map[string]interface{}{
		"exchange": s.exchange,
		"synced":   synced,
	})

	s.log.Info().Int("synced", synced).Msg("Universe sync completed")
	return synced, nil
}
