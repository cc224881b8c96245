package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Stage is one sequential step of the signal pipeline
type Stage struct {
	Name string
	Run  func() error
}

// PipelineJob runs the ingest -> classify -> score chain as one batch
// pass. Stages run strictly in order and each runs to completion over its
// whole candidate set before the next starts. A failed stage is logged and
// the chain continues: a broken feed must not stop scoring of already
// classified events.
type PipelineJob struct {
	stages []Stage
	log    zerolog.Logger
}

// NewPipelineJob creates a new pipeline job
func NewPipelineJob(log zerolog.Logger, stages ...Stage) *PipelineJob {
	return &PipelineJob{
		stages: stages,
		log:    log.With().Str("job", "pipeline").Logger(),
	}
}

// Name returns the job name
func (j *PipelineJob) Name() string {
	return "pipeline"
}

// Run executes all stages sequentially. Returns an error when any stage
// failed, after every stage has had its turn.
func (j *PipelineJob) Run() error {
	failed := 0

	for _, stage := range j.stages {
		j.log.Info().Str("stage", stage.Name).Msg("Running pipeline stage")

		if err := stage.Run(); err != nil {
			j.log.Error().Err(err).Str("stage", stage.Name).Msg("Pipeline stage failed")
			failed++
			continue
		}

		j.log.Debug().Str("stage", stage.Name).Msg("Pipeline stage completed")
	}

	if failed > 0 {
		return fmt.Errorf("pipeline completed with %d of %d stages failed", failed, len(j.stages))
	}

	return nil
}
