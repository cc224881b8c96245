package scheduler

import (
	"github.com/navitrade/newsflow/internal/modules/prices"
	"github.com/rs/zerolog"
)

// PriceSnapshotJob captures a quote snapshot for the whole roster.
// Outside trading hours the job skips entirely; quotes would just
// repeat the previous close.
type PriceSnapshotJob struct {
	service  *prices.SyncService
	hours    *MarketHoursService
	exchange string
	log      zerolog.Logger
}

// NewPriceSnapshotJob creates a new price snapshot job
func NewPriceSnapshotJob(service *prices.SyncService, hours *MarketHoursService, exchange string, log zerolog.Logger) *PriceSnapshotJob {
	return &PriceSnapshotJob{
		service:  service,
		hours:    hours,
		exchange: exchange,
		log:      log.With().Str("job", "price_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *PriceSnapshotJob) Name() string {
	return "price_snapshot"
}

// Run executes the snapshot sync
func (j *PriceSnapshotJob) Run() error {
	if j.hours != nil && !j.hours.IsMarketOpen(j.exchange) {
		j.log.Debug().Str("exchange", j.exchange).Msg("Market closed, skipping snapshot")
		return nil
	}

	stored, err := j.service.Sync()
	if err != nil {
		return err
	}

	j.log.Info().Int("snapshots", stored).Msg("Price snapshots captured")
	return nil
}
