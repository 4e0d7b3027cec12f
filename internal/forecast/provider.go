package forecast

import (
	"context"
	"io"
)

// TimeResolver finds the newest forecast run offered by the remote service.
type TimeResolver interface {
	LatestOriginTime(ctx context.Context) (OriginTime, error)
}

// Downloader streams one forecast subset into w.
type Downloader interface {
	Download(ctx context.Context, w io.Writer, req DownloadRequest, progress ProgressReporter) (DownloadResult, error)
}

// ProgressReporter observes a transfer. It is best effort: an error from
// Update never aborts the download.
type ProgressReporter interface {
	Start(total int64)
	Update(written int64) error
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int64)        {}
func (nopProgress) Update(int64) error { return nil }
func (nopProgress) Finish()            {}

// NopProgress returns a reporter that discards all updates.
func NopProgress() ProgressReporter { return nopProgress{} }
