// Package models defines the core domain entities for aurorawatch: normalized
// geomagnetic readings, hourly sky-condition series, observation window
// results, and the fully-decided alert payload handed to notification
// channels.
package models

import "time"

// Reading is a normalized geomagnetic activity measurement. Value is the
// unitless planetary index (typically 0-9). TimeTag is the raw timestamp
// string as delivered by the feed; Instant is its parsed UTC form, nil when
// the feed's timestamp matched none of the known formats. A nil Instant makes
// the reading ineligible for age display but not for threshold comparison.
type Reading struct {
	Value   float64    `json:"value"`
	TimeTag string     `json:"time_tag"`
	Instant *time.Time `json:"instant,omitempty"`
}

// HourlySeries is a sky-condition forecast as parallel hourly arrays, the way
// the upstream feed delivers it. Times are naive local timestamps
// ("2006-01-02T15:04"), CloudCover is percent 0-100, IsDay is 1 for daylight.
// UTCOffsetSeconds is the feed's local-zone offset used for window math.
type HourlySeries struct {
	Times            []string `json:"time"`
	CloudCover       []int    `json:"cloud_cover"`
	IsDay            []int    `json:"is_day"`
	UTCOffsetSeconds int      `json:"utc_offset_seconds"`
}

// Valid reports whether the series is usable: non-empty with matching
// parallel array lengths.
func (s HourlySeries) Valid() bool {
	return len(s.Times) > 0 &&
		len(s.Times) == len(s.CloudCover) &&
		len(s.Times) == len(s.IsDay)
}

// WindowResult is the outcome of searching for the best observation slot
// around a forecast peak. When Found is false the identifying fields are
// zero-valued and must not be shown.
type WindowResult struct {
	Found      bool   `json:"found"`
	CloudCover int    `json:"cloud_cover,omitempty"`
	LocalTime  string `json:"local_time,omitempty"`
}
