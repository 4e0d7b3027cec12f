package fmi

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"net/url"

	"github.com/i474232898/grib-downloader/internal/forecast"
)

const storedQueryID = "fmi::forecast::hirlam::surface::finland::grid"

// LatestOriginTime queries the available HIRLAM runs and returns the newest
// origin time. Nothing is cached; every call hits the service.
func (c *Client) LatestOriginTime(ctx context.Context) (forecast.OriginTime, error) {
	values := url.Values{}
	values.Set("request", "GetFeature")
	values.Set("storedquery_id", storedQueryID)

	resp, err := c.doRequest(ctx, c.endpoint("wfs", values))
	if err != nil {
		log.Printf("fmi: unable to download forecast times, invalid API key? %v", err)
		return "", err
	}
	defer resp.Body.Close()

	var fc FeatureCollection
	if err := xml.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return "", fmt.Errorf("%w: decode feature collection: %v", forecast.ErrTransport, err)
	}

	return LatestOf(fc)
}

// LatestOf returns the greatest timestamp in the collection. The fixed-width
// format makes string order chronological.
func LatestOf(fc FeatureCollection) (forecast.OriginTime, error) {
	var latest string
	for _, m := range fc.Members {
		if ts := m.Observation.TimePosition; ts > latest {
			latest = ts
		}
	}

	if latest == "" {
		return "", forecast.ErrNoForecast
	}
	return forecast.OriginTime(latest), nil
}
