package decision

import (
	"time"

	"aurorawatch/internal/models"
)

// hourlyLayout is the naive local timestamp format of the sky feed's hourly
// series.
const hourlyLayout = "2006-01-02T15:04"

// LocateBestWindow searches the hourly series for the best observation slot
// within ±windowHours of the forecast peak. The peak instant (UTC) and each
// naive local sample are both shifted by utcOffsetSeconds so the comparison
// happens in the same local-shifted epoch space.
//
// A sample qualifies when it falls inside the window, is dark, and has cloud
// cover at or below maxCloud. The lowest cloud cover wins; ties go to the
// earliest sample. Malformed sample timestamps are skipped. An empty or
// length-mismatched series yields no result.
func LocateBestWindow(series models.HourlySeries, peakInstant time.Time, windowHours, maxCloud, utcOffsetSeconds int) models.WindowResult {
	if !series.Valid() {
		return models.WindowResult{}
	}

	peakLocal := peakInstant.Unix() + int64(utcOffsetSeconds)
	start := peakLocal - int64(windowHours)*3600
	end := peakLocal + int64(windowHours)*3600

	bestCloud := -1
	bestTime := ""

	for i, tstr := range series.Times {
		t, err := time.ParseInLocation(hourlyLayout, tstr, time.UTC)
		if err != nil {
			continue
		}
		ts := t.Unix() + int64(utcOffsetSeconds)
		if ts < start || ts > end {
			continue
		}
		if series.IsDay[i] != 0 {
			continue
		}
		cloud := series.CloudCover[i]
		if cloud > maxCloud {
			continue
		}
		if bestCloud < 0 || cloud < bestCloud {
			bestCloud = cloud
			bestTime = tstr
		}
	}

	if bestCloud < 0 {
		return models.WindowResult{}
	}
	return models.WindowResult{Found: true, CloudCover: bestCloud, LocalTime: bestTime}
}
