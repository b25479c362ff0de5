// Package swpc normalizes NOAA SWPC-style geomagnetic index feeds into
// canonical readings and fetches the three known endpoints (observed index,
// forecast, 1-minute nowcast).
//
// The feeds disagree about shape: the products endpoints emit a tabular array
// with a header row, while the json endpoints emit a list of records or a
// wrapper object, and key names vary between deployments. Normalization
// dispatches on a closed shape variant and never fails: a malformed payload
// yields no reading, which callers treat as an expected outcome.
package swpc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"aurorawatch/internal/models"
	"aurorawatch/internal/timeutil"
)

// Shape classifies the top-level structure of a feed payload.
type Shape int

const (
	// ShapeUnknown means no normalization rule applies.
	ShapeUnknown Shape = iota
	// ShapeTabular is a header row followed by positional data rows.
	ShapeTabular
	// ShapeRecordList is a flat list of key-value records.
	ShapeRecordList
	// ShapeDictWrapper is an object holding a record list under a container
	// key, or itself acting as a single record.
	ShapeDictWrapper
)

// Key synonym lists, tried in order. The first present, non-nil key wins.
var (
	valueKeys     = []string{"kp", "estimated_kp", "k_index", "kp_index", "kp_value", "value"}
	timeKeys      = []string{"time_tag", "time", "datetime", "timestamp", "date"}
	containerKeys = []string{"data", "values", "k_index", "planetary_k_index", "results"}
)

// leadingNumberRe extracts the leading signed decimal from noisy index
// strings like "6P" or "7.3+" (provisional-data qualifiers).
var leadingNumberRe = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\d*\.?\d+)`)

// DetectShape classifies a decoded JSON payload into the closed shape set.
func DetectShape(raw any) Shape {
	switch v := raw.(type) {
	case []any:
		if len(v) == 0 {
			return ShapeRecordList
		}
		if _, ok := v[0].([]any); ok {
			return ShapeTabular
		}
		return ShapeRecordList
	case map[string]any:
		return ShapeDictWrapper
	default:
		return ShapeUnknown
	}
}

// Normalize converts a decoded feed payload of any supported shape into a
// canonical reading. It returns nil, never an error: absence of a reading is
// a valid outcome when the upstream feed is temporarily malformed.
func Normalize(raw any) (reading *models.Reading) {
	defer func() {
		if recover() != nil {
			reading = nil
		}
	}()

	switch DetectShape(raw) {
	case ShapeTabular:
		return normalizeTabular(raw.([]any))
	case ShapeRecordList:
		return normalizeRecordList(raw.([]any))
	case ShapeDictWrapper:
		return normalizeWrapper(raw.(map[string]any))
	default:
		return nil
	}
}

// normalizeTabular reads the last usable data row of a header+rows table.
// Column 0 is the timestamp, column 1 the index value; rows shorter than two
// elements are skipped. Feeds are append-only, so the last row is
// authoritative.
func normalizeTabular(rows []any) *models.Reading {
	if len(rows) < 2 {
		return nil
	}
	for i := len(rows) - 1; i >= 1; i-- {
		row, ok := rows[i].([]any)
		if !ok || len(row) < 2 {
			continue
		}
		value, ok := toNumeric(row[1])
		if !ok {
			return nil
		}
		return newReading(value, stringify(row[0]))
	}
	return nil
}

// normalizeRecordList reads the last record of a list of key-value records,
// resolving the value and timestamp through the key synonym lists. Missing
// either field means no reading.
func normalizeRecordList(items []any) *models.Reading {
	if len(items) == 0 {
		return nil
	}
	last, ok := items[len(items)-1].(map[string]any)
	if !ok {
		return nil
	}
	return normalizeRecord(last)
}

// normalizeWrapper unwraps known container keys into a record list, or falls
// back to treating the object itself as a single record.
func normalizeWrapper(m map[string]any) *models.Reading {
	for _, key := range containerKeys {
		if inner, ok := m[key].([]any); ok {
			return normalizeRecordList(inner)
		}
	}
	return normalizeRecord(m)
}

func normalizeRecord(rec map[string]any) *models.Reading {
	rawValue := firstPresent(rec, valueKeys)
	rawTime := firstPresent(rec, timeKeys)
	if rawValue == nil || rawTime == nil {
		return nil
	}
	value, ok := toNumeric(rawValue)
	if !ok {
		return nil
	}
	return newReading(value, stringify(rawTime))
}

func firstPresent(rec map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func newReading(value float64, timeTag string) *models.Reading {
	return &models.Reading{
		Value:   value,
		TimeTag: timeTag,
		Instant: timeutil.ParseInstant(timeTag),
	}
}

// toNumeric coerces a feed value to float64. Numeric literals pass through;
// strings are normalized (comma decimal separators become dots) and then the
// leading signed decimal is extracted, discarding trailing qualifiers.
func toNumeric(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		m := leadingNumberRe.FindString(s)
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// stringify preserves feed timestamps for display. They are strings in every
// observed format; numerics are formatted without trailing zeros just in case.
func stringify(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ForecastPeak scans a forecast feed for the maximum index value whose
// timestamp falls within [now, now+horizon]. Rows with unparseable
// timestamps or values are skipped, not fatal. The second return is false
// when no row qualified.
func ForecastPeak(raw any, horizonHours int, now time.Time) (models.Reading, bool) {
	var rows []any
	switch DetectShape(raw) {
	case ShapeTabular:
		rows = raw.([]any)[1:]
	case ShapeRecordList:
		rows = raw.([]any)
	default:
		return models.Reading{}, false
	}

	best := models.Reading{Value: -1}
	found := false

	for _, r := range rows {
		row, ok := r.([]any)
		if !ok || len(row) < 2 {
			continue
		}
		timeTag := stringify(row[0])
		instant := timeutil.ParseInstant(timeTag)
		if instant == nil {
			continue
		}
		deltaHours := instant.Sub(now).Hours()
		if deltaHours < 0 || deltaHours > float64(horizonHours) {
			continue
		}
		value, ok := toNumeric(row[1])
		if !ok {
			continue
		}
		if value > best.Value {
			best = models.Reading{Value: value, TimeTag: timeTag, Instant: instant}
			found = true
		}
	}

	return best, found
}
