package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/i474232898/grib-downloader/internal/forecast"
)

type chanAcquirer struct {
	calls chan forecast.Coordinates
}

func (a *chanAcquirer) AcquireLatest(ctx context.Context, center forecast.Coordinates) (forecast.Result, error) {
	a.calls <- center
	return forecast.Result{Status: forecast.StatusSkipped}, nil
}

func TestSchedulerRunsImmediately(t *testing.T) {
	acq := &chanAcquirer{calls: make(chan forecast.Coordinates, 4)}
	center := forecast.Coordinates{Latitude: 60.17, Longitude: 24.94}

	s := New(center, time.Hour, acq)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	select {
	case got := <-acq.calls:
		if got != center {
			t.Fatalf("expected %s, got %s", center, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected the first acquisition to run right away")
	}
}
