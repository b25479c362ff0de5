// Package timeutil parses the loosely-specified timestamp strings emitted by
// the upstream feeds and formats instants for display. The feeds use a small
// closed set of formats, so parsing is an ordered list of explicit attempts
// rather than a universal parser that could silently misread novel input.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"aurorawatch/internal/models"
)

// instantFormats is the ordered list of timestamp layouts the feeds are known
// to emit. First match wins. All values are interpreted as UTC regardless of
// any embedded zone marker; the feeds use UTC conventionally.
var instantFormats = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z",
	"2006-01-02T15:04",
}

// ParseInstant parses a feed timestamp into a UTC instant. A nil result is
// not an error: callers must treat it as "unknown age", never fail the run.
func ParseInstant(tag string) *time.Time {
	for _, layout := range instantFormats {
		if t, err := time.ParseInLocation(layout, tag, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

// Age renders the elapsed time since instant as "5h 12m ago" or "12m ago".
// A nil instant, or one in the future (clock skew), yields the unknown
// placeholder rather than a negative duration.
func Age(instant *time.Time) string {
	if instant == nil {
		return models.Unknown
	}
	delta := NowUTC().Sub(*instant)
	if delta < 0 {
		return models.Unknown
	}
	h := int(delta.Hours())
	m := int(delta.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm ago", h, m)
	}
	return fmt.Sprintf("%dm ago", m)
}

// ToLocal formats a UTC instant in the given IANA zone for display.
func ToLocal(instant *time.Time, zone string) string {
	if instant == nil {
		return models.Unknown
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return instant.Format("02.01.2006, 15:04") + " UTC"
	}
	return instant.In(loc).Format("02.01.2006, 15:04")
}

// PrettyLocal makes a naive sky-feed timestamp ("2006-01-02T15:04") readable
// by replacing the T separator. Empty input yields the unknown placeholder.
func PrettyLocal(s string) string {
	if s == "" {
		return models.Unknown
	}
	return strings.Replace(s, "T", " ", 1)
}
