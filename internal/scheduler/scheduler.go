package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/grib-downloader/internal/forecast"
)

// Acquirer runs one forecast acquisition for a location.
type Acquirer interface {
	AcquireLatest(ctx context.Context, center forecast.Coordinates) (forecast.Result, error)
}

// Scheduler periodically acquires the latest forecast for one location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Acquirer
	center    forecast.Coordinates
	interval  time.Duration
}

// New creates a new Scheduler.
func New(center forecast.Coordinates, interval time.Duration, service Acquirer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		center:    center,
		interval:  interval,
	}
}

// Start schedules the job and starts the underlying scheduler. The first run
// happens immediately. Runs never overlap, so at most one acquisition is in
// flight; ctx is handed to every run.
func (s *Scheduler) Start(ctx context.Context) error {
	interval := s.interval
	if interval <= 0 {
		interval = time.Hour
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		log.Printf("scheduler: acquiring latest forecast for %s", s.center)

		res, err := s.service.AcquireLatest(ctx, s.center)
		if err != nil {
			log.Printf("scheduler: acquisition failed for %s: %v", s.center, err)
			return
		}
		log.Printf("scheduler: acquisition for %s finished: %s", s.center, res.Status)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
