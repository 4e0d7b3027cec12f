package forecast

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OriginTimeLayout is the fixed-width timestamp format used by the FMI API.
const OriginTimeLayout = "2006-01-02T15:04:05Z"

// OriginTime identifies the model run that produced a forecast.
// Values are compared as strings; the layout is zero-padded so string order
// equals chronological order.
type OriginTime string

// Time parses the origin time in OriginTimeLayout.
func (t OriginTime) Time() (time.Time, error) {
	ts, err := time.Parse(OriginTimeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidOriginTime, string(t))
	}
	return ts, nil
}

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// String renders the point as "lat,lon".
func (c Coordinates) String() string {
	return formatCoordinate(c.Latitude) + "," + formatCoordinate(c.Longitude)
}

// ParseCoordinates parses a "lat,lon" pair such as "60.17,24.94".
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("%w: expected lat,lon, got %q", ErrInvalidCoordinates, s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinates, parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinates, parts[1])
	}

	c := Coordinates{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Validate checks that the point lies within valid latitude/longitude ranges.
func (c Coordinates) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return nil
}

// BoundingBox is the rectangular area requested from the download endpoint.
type BoundingBox struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// String renders the box in the API's west,south,east,north order.
func (b BoundingBox) String() string {
	return strings.Join([]string{
		formatCoordinate(b.West),
		formatCoordinate(b.South),
		formatCoordinate(b.East),
		formatCoordinate(b.North),
	}, ",")
}

// DownloadWindow is the forecast time range requested from the API.
type DownloadWindow struct {
	Start OriginTime `json:"start"`
	End   OriginTime `json:"end"`
}

// ForecastQuery carries what the caller supplies for a download:
// the API key and an optional parameter set.
type ForecastQuery struct {
	APIKey     string
	Parameters []string
}

// ParameterSet returns the validated parameters, or the default set when none
// were supplied.
func (q ForecastQuery) ParameterSet() ([]string, error) {
	if len(q.Parameters) == 0 {
		return DefaultParameters(), nil
	}
	if err := ValidateParameters(q.Parameters); err != nil {
		return nil, err
	}
	return append([]string(nil), q.Parameters...), nil
}

// DownloadRequest is everything the streaming downloader encodes into the
// download URL.
type DownloadRequest struct {
	Parameters  []string
	BoundingBox BoundingBox
	Origin      OriginTime
	Window      DownloadWindow
}

// DownloadResult describes a finished transfer.
type DownloadResult struct {
	BytesWritten int64
	Chunks       int
}

// formatCoordinate renders floats in their shortest form, keeping a trailing
// ".0" on integral values so 60 prints as "60.0".
func formatCoordinate(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
