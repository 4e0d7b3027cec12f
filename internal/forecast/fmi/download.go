package fmi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/i474232898/grib-downloader/internal/forecast"
)

const (
	chunkSize = 1024

	// estimatedSize is the progress ceiling used when the server sends no
	// Content-Length. A typical four-day subset is a few megabytes.
	estimatedSize = 3500000
)

// DownloadURL builds the HIRLAM download URL for req.
func (c *Client) DownloadURL(req forecast.DownloadRequest) string {
	values := url.Values{}
	values.Set("producer", "hirlam")
	values.Set("param", strings.Join(req.Parameters, ","))
	values.Set("bbox", req.BoundingBox.String())
	values.Set("origintime", string(req.Origin))
	values.Set("starttime", string(req.Window.Start))
	values.Set("endtime", string(req.Window.End))
	values.Set("format", "grib2")
	values.Set("projection", "epsg:4326")

	return c.endpoint("download", values)
}

// Download streams the forecast subset into w in fixed-size chunks, reporting
// the cumulative byte count after each one. The parameter set is validated
// before any request is issued. Read errors are fatal; nothing is retried and
// no integrity check is made on the bytes written.
func (c *Client) Download(ctx context.Context, w io.Writer, req forecast.DownloadRequest, progress forecast.ProgressReporter) (forecast.DownloadResult, error) {
	var res forecast.DownloadResult

	if err := forecast.ValidateParameters(req.Parameters); err != nil {
		return res, err
	}
	if progress == nil {
		progress = forecast.NopProgress()
	}

	resp, err := c.doRequest(ctx, c.DownloadURL(req))
	if err != nil {
		return res, err
	}
	defer resp.Body.Close()

	total := resp.ContentLength
	if total <= 0 {
		total = estimatedSize
	}
	progress.Start(total)
	defer progress.Finish()

	reportFailed := false
	buf := make([]byte, chunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return res, fmt.Errorf("write chunk: %w", err)
			}
			res.BytesWritten += int64(n)
			res.Chunks++

			if err := progress.Update(res.BytesWritten); err != nil && !reportFailed {
				log.Printf("DEBUG: fmi: progress report failed: %v", err)
				reportFailed = true
			}
		}

		if errors.Is(readErr, io.EOF) {
			return res, nil
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			return res, fmt.Errorf("%w: read body: %v", forecast.ErrTransport, readErr)
		}
	}
}
