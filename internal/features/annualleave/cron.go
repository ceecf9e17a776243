package annualleave

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// rolloverSpec fires shortly after midnight on January 1st.
const rolloverSpec = "5 0 1 1 *"

// RolloverJob owns the yearly grant schedule.
type RolloverJob struct {
	cron    *cron.Cron
	service BalanceService
	logger  *zap.Logger
}

func NewRolloverJob(lc fx.Lifecycle, service BalanceService, logger *zap.Logger) *RolloverJob {
	job := &RolloverJob{
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

func (j *RolloverJob) start() error {
	_, err := j.cron.AddFunc(rolloverSpec, j.run)
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("annual leave rollover scheduled", zap.String("spec", rolloverSpec))
	return nil
}

func (j *RolloverJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	year := strconv.Itoa(time.Now().Year())
	if _, err := j.service.Rollover(ctx, year); err != nil {
		j.logger.Error("annual leave rollover failed", zap.String("year", year), zap.Error(err))
	}
}
