package forecast

const (
	latitudeMargin  = 1.5
	longitudeMargin = 3.0
	windowDays      = 4
)

// ComputeBoundingBox derives the download area around center.
// The box is not clamped, so centers near a pole or the antimeridian can
// produce out-of-range edges.
func ComputeBoundingBox(center Coordinates) BoundingBox {
	return BoundingBox{
		South: center.Latitude - latitudeMargin,
		North: center.Latitude + latitudeMargin,
		West:  center.Longitude - longitudeMargin,
		East:  center.Longitude + longitudeMargin,
	}
}

// ComputeWindow returns the four-day window starting at origin.
func ComputeWindow(origin OriginTime) (DownloadWindow, error) {
	start, err := origin.Time()
	if err != nil {
		return DownloadWindow{}, err
	}

	end := start.AddDate(0, 0, windowDays)
	return DownloadWindow{
		Start: origin,
		End:   OriginTime(end.Format(OriginTimeLayout)),
	}, nil
}
