package forecast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Status is the terminal state of one acquisition.
type Status string

const (
	StatusNotAvailable Status = "not_available"
	StatusSkipped      Status = "skipped"
	StatusDownloaded   Status = "downloaded"
)

// Result describes what AcquireLatest did.
type Result struct {
	Status       Status         `json:"status"`
	Origin       OriginTime     `json:"originTime,omitempty"`
	Window       DownloadWindow `json:"window"`
	BoundingBox  BoundingBox    `json:"boundingBox"`
	Path         string         `json:"path,omitempty"`
	BytesWritten int64          `json:"bytesWritten,omitempty"`
}

// Options configures a Service.
type Options struct {
	// OutputDir is where artifacts are written. Empty means the working directory.
	OutputDir string

	// Parameters requested from the download endpoint. Empty means DefaultParameters.
	Parameters []string

	// Progress builds a reporter per download. Nil disables progress output.
	Progress func() ProgressReporter
}

// Service acquires the latest forecast for a location, skipping the download
// when a valid artifact for the same run and coordinates already exists.
type Service struct {
	resolver    TimeResolver
	downloader  Downloader
	outputDir   string
	parameters  []string
	newProgress func() ProgressReporter
}

// NewService creates a new Service. An invalid parameter set is rejected here,
// before any request is made.
func NewService(resolver TimeResolver, downloader Downloader, opts Options) (*Service, error) {
	params, err := ForecastQuery{Parameters: opts.Parameters}.ParameterSet()
	if err != nil {
		return nil, err
	}

	newProgress := opts.Progress
	if newProgress == nil {
		newProgress = NopProgress
	}

	return &Service{
		resolver:    resolver,
		downloader:  downloader,
		outputDir:   opts.OutputDir,
		parameters:  params,
		newProgress: newProgress,
	}, nil
}

// AcquireLatest downloads the newest forecast run around center.
// A missing origin time is not an error: the result is StatusNotAvailable.
func (s *Service) AcquireLatest(ctx context.Context, center Coordinates) (Result, error) {
	if err := center.Validate(); err != nil {
		return Result{}, err
	}

	origin, err := s.resolver.LatestOriginTime(ctx)
	if err != nil {
		if errors.Is(err, ErrTransport) || errors.Is(err, ErrNoForecast) {
			log.Printf("INFO: No forecast origin time available: %v", err)
			return Result{Status: StatusNotAvailable}, nil
		}
		return Result{}, err
	}

	window, err := ComputeWindow(origin)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Origin:      origin,
		Window:      window,
		BoundingBox: ComputeBoundingBox(center),
		Path:        filepath.Join(s.outputDir, ArtifactName(origin, center)),
	}

	state, err := InspectArtifact(res.Path)
	if err != nil {
		return Result{}, fmt.Errorf("inspect %s: %w", res.Path, err)
	}
	switch state {
	case ArtifactEmpty:
		log.Printf("INFO: Datafile %s exists, but it is empty. Downloading a new version.", res.Path)
	case ArtifactNotGrib:
		log.Printf("INFO: %s is not a grib file. Downloading a new version.", res.Path)
	case ArtifactTruncated:
		log.Printf("INFO: %s is not a complete grib file. Downloading a new version.", res.Path)
	case ArtifactValid:
		log.Printf("INFO: Datafile %s exists and seems to be valid grib2. Skipping download.", res.Path)
		res.Status = StatusSkipped
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	log.Printf("INFO: Downloading grib with origin time %s and coordinates %s", origin, center)

	written, err := s.downloadTo(ctx, res.Path, DownloadRequest{
		Parameters:  s.parameters,
		BoundingBox: res.BoundingBox,
		Origin:      origin,
		Window:      window,
	})
	res.BytesWritten = written
	if err != nil {
		return res, err
	}

	res.Status = StatusDownloaded
	return res, nil
}

// downloadTo truncates path and streams the download into it. The file is
// closed before returning; a failed transfer is left on disk for the next
// inspection to catch.
func (s *Service) downloadTo(ctx context.Context, path string, req DownloadRequest) (int64, error) {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create artifact: %w", err)
	}

	res, err := s.downloader.Download(ctx, f, req, s.newProgress())
	closeErr := f.Close()
	if err != nil {
		return res.BytesWritten, err
	}
	if closeErr != nil {
		return res.BytesWritten, fmt.Errorf("could not close artifact: %w", closeErr)
	}

	log.Printf("INFO: Wrote %d bytes to %s", res.BytesWritten, path)
	return res.BytesWritten, nil
}
