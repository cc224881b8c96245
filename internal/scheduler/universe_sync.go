package scheduler

import (
	"github.com/navitrade/newsflow/internal/modules/universe"
	"github.com/rs/zerolog"
)

// UniverseSyncJob refreshes the tracked company roster from the exchange
// master list
type UniverseSyncJob struct {
	service *universe.SyncService
	log     zerolog.Logger
}

// NewUniverseSyncJob creates a new universe sync job
func NewUniverseSyncJob(service *universe.SyncService, log zerolog.Logger) *UniverseSyncJob {
	return &UniverseSyncJob{
		service: service,
		log:     log.With().Str("job", "universe_sync").Logger(),
	}
}

// Name returns the job name
func (j *UniverseSyncJob) Name() string {
	return "universe_sync"
}

// Run executes the sync
func (j *UniverseSyncJob) Run() error {
	synced, err := j.service.Sync()
	if err != nil {
		return err
	}

	j.log.Info().Int("companies", synced).Msg("Universe refreshed")
	return nil
}
