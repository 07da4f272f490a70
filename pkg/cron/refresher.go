// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher periodically re-runs a reload function, typically the source
// snapshot rebuild.
type Refresher struct {
	cron     *cron.Cron
	schedule string
	reload   func(context.Context)
	logger   *slog.Logger
}

// NewRefresher creates a refresher running reload on the given cron schedule.
func NewRefresher(schedule string, reload func(context.Context), logger *slog.Logger) *Refresher {
	// Standard 5-field cron format, no seconds.
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Refresher{
		cron:     c,
		schedule: schedule,
		reload:   reload,
		logger:   logger,
	}
}

// Start begins the scheduled reloads. A refresher with an empty schedule is a
// no-op.
func (r *Refresher) Start() error {
	if r.schedule == "" {
		r.logger.Info("source refresher disabled")
		return nil
	}

	_, err := r.cron.AddFunc(r.schedule, func() {
		r.logger.Info("scheduled source reload starting")
		r.reload(context.Background())
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info("source refresher started", slog.String("schedule", r.schedule))
	return nil
}

// Stop gracefully stops the scheduled jobs.
func (r *Refresher) Stop() context.Context {
	r.logger.Info("source refresher stopping")
	return r.cron.Stop()
}
