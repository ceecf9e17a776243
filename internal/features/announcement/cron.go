package announcement

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// sweepSpec runs the expiry sweep nightly just after midnight.
const sweepSpec = "10 0 * * *"

// SweepJob deactivates announcements past their expire date.
type SweepJob struct {
	cron    *cron.Cron
	service AnnouncementService
	logger  *zap.Logger
}

func NewSweepJob(lc fx.Lifecycle, service AnnouncementService, logger *zap.Logger) *SweepJob {
	job := &SweepJob{
		cron:    cron.New(),
		service: service,
		logger:  logger,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return job.start()
		},
		OnStop: func(context.Context) error {
			job.cron.Stop()
			return nil
		},
	})
	return job
}

func (j *SweepJob) start() error {
	_, err := j.cron.AddFunc(sweepSpec, j.run)
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("announcement expiry sweep scheduled", zap.String("spec", sweepSpec))
	return nil
}

func (j *SweepJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := j.service.SweepExpired(ctx); err != nil {
		j.logger.Error("announcement expiry sweep failed", zap.Error(err))
	}
}
