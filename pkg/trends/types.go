package trends

import (
	"encoding/json"
	"fmt"
)

// GeoLevel is the granularity of a geography restriction.
type GeoLevel string

const (
	GeoCountry GeoLevel = "country"
	GeoRegion  GeoLevel = "region"
	GeoDMA     GeoLevel = "dma"
)

// Valid reports whether the level is one the remote service accepts.
func (g GeoLevel) Valid() bool {
	switch g {
	case GeoCountry, GeoRegion, GeoDMA:
		return true
	}
	return false
}

// Frequency is the time resolution of the returned timelines. It is
// passed through to the remote service uninterpreted.
type Frequency string

const (
	FreqDay   Frequency = "day"
	FreqWeek  Frequency = "week"
	FreqMonth Frequency = "month"
	FreqYear  Frequency = "year"
)

// TimelinesRequest is one batched call against the timelines endpoint.
// Terms must not exceed MaxTermsPerRequest.
type TimelinesRequest struct {
	Terms      []string
	StartDate  string
	EndDate    string
	Resolution string
	Geo        string
	GeoLevel   GeoLevel
}

// TimelinesResponse is the raw payload of a timelines call: one line per
// requested term, one point per date.
type TimelinesResponse struct {
	Lines []Line `json:"lines"`
}

// Line groups the data points for a single term.
type Line struct {
	Term   string  `json:"term"`
	Points []Point `json:"points"`
}

// Point is a single (date, value) observation. The date arrives as
// free-form text and is normalized downstream.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ParseTimelinesResponse decodes a raw timelines payload.
func ParseTimelinesResponse(body []byte) (*TimelinesResponse, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body from timelines API")
	}

	var resp TimelinesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode timelines response: %w", err)
	}
	return &resp, nil
}

// geoRestrictionParam maps a geo level to its request parameter. Exactly
// one restriction parameter is set per request.
func geoRestrictionParam(level GeoLevel) string {
	switch level {
	case GeoCountry:
		return "geoRestriction_country"
	case GeoRegion:
		return "geoRestriction_region"
	case GeoDMA:
		return "geoRestriction_dma"
	}
	return ""
}
