package forecast

import "errors"

var (
	// ErrTransport covers non-success statuses and I/O failures talking to the remote service.
	ErrTransport = errors.New("transport error")

	// ErrNoForecast is returned when the feature collection lists no forecast runs.
	ErrNoForecast = errors.New("no forecast runs available")

	// ErrInvalidParameterSet is returned when a parameter is outside the fixed vocabulary.
	ErrInvalidParameterSet = errors.New("invalid parameter set")

	// ErrInvalidOriginTime is returned when an origin time does not match OriginTimeLayout.
	ErrInvalidOriginTime = errors.New("invalid origin time")

	// ErrInvalidCoordinates is returned for unparsable or out-of-range coordinates.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
