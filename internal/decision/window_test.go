package decision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurorawatch/internal/models"
)

func hourlyFixture() models.HourlySeries {
	return models.HourlySeries{
		Times:            []string{"2026-03-01T20:00", "2026-03-01T21:00", "2026-03-01T22:00", "2026-03-01T23:00"},
		CloudCover:       []int{80, 40, 20, 90},
		IsDay:            []int{0, 0, 0, 0},
		UTCOffsetSeconds: 3600,
	}
}

func TestLocateBestWindow_LowestCloudWins(t *testing.T) {
	series := hourlyFixture()
	// Peak at 21:00 UTC == 22:00 local; window ±2h spans the whole series.
	peak := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	res := LocateBestWindow(series, peak, 2, 70, series.UTCOffsetSeconds)
	require.True(t, res.Found)
	assert.Equal(t, 20, res.CloudCover)
	assert.Equal(t, "2026-03-01T22:00", res.LocalTime)
}

func TestLocateBestWindow_TieGoesToEarliest(t *testing.T) {
	series := hourlyFixture()
	series.CloudCover = []int{40, 20, 20, 90}
	peak := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	res := LocateBestWindow(series, peak, 2, 70, series.UTCOffsetSeconds)
	require.True(t, res.Found)
	assert.Equal(t, "2026-03-01T21:00", res.LocalTime)
}

func TestLocateBestWindow_AllCloudy(t *testing.T) {
	series := hourlyFixture()
	series.CloudCover = []int{95, 88, 71, 100}
	peak := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	res := LocateBestWindow(series, peak, 2, 70, series.UTCOffsetSeconds)
	assert.False(t, res.Found)
}

func TestLocateBestWindow_DaylightExcluded(t *testing.T) {
	series := hourlyFixture()
	series.IsDay = []int{1, 1, 1, 1}
	peak := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	res := LocateBestWindow(series, peak, 2, 70, series.UTCOffsetSeconds)
	assert.False(t, res.Found)
}

func TestLocateBestWindow_OutsideWindowExcluded(t *testing.T) {
	series := hourlyFixture()
	// Peak shifted past the series: only the 23:00 local sample reaches ±1h.
	peak := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // 01:00 local next day
	res := LocateBestWindow(series, peak, 1, 95, series.UTCOffsetSeconds)
	require.True(t, res.Found)
	assert.Equal(t, "2026-03-01T23:00", res.LocalTime)
	assert.Equal(t, 90, res.CloudCover)
}

func TestLocateBestWindow_MalformedTimestampSkipped(t *testing.T) {
	series := hourlyFixture()
	series.Times[2] = "not-a-time"
	peak := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	res := LocateBestWindow(series, peak, 2, 70, series.UTCOffsetSeconds)
	require.True(t, res.Found)
	assert.Equal(t, 40, res.CloudCover)
}

func TestLocateBestWindow_MismatchedSeries(t *testing.T) {
	series := hourlyFixture()
	series.IsDay = series.IsDay[:2]
	peak := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	assert.False(t, LocateBestWindow(series, peak, 2, 70, series.UTCOffsetSeconds).Found)
}

func TestLocateBestWindow_EmptySeries(t *testing.T) {
	peak := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)
	assert.False(t, LocateBestWindow(models.HourlySeries{}, peak, 2, 70, 0).Found)
}
