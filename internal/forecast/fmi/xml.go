package fmi

import "encoding/xml"

// FeatureCollection is the WFS response of the HIRLAM grid stored query.
// Element names are matched on their local part, so the wfs/omso/om/gml
// namespace prefixes do not need to be spelled out.
type FeatureCollection struct {
	XMLName xml.Name `xml:"FeatureCollection"`
	Members []Member `xml:"member"`
}

type Member struct {
	Observation GridSeriesObservation `xml:"GridSeriesObservation"`
}

type GridSeriesObservation struct {
	// TimePosition is the run's origin time.
	TimePosition string `xml:"parameter>NamedValue>value>TimeInstant>timePosition"`
}
