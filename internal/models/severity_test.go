package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityTier(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		label string
	}{
		{"extreme at boundary", 8.0, "EXTREME"},
		{"extreme above scale", 11.5, "EXTREME"},
		{"very high", 7.4, "VERY HIGH"},
		{"high at boundary", 6.0, "HIGH"},
		{"moderate just below high", 5.99, "MODERATE"},
		{"moderate at boundary", 5.0, "MODERATE"},
		{"low", 3.2, "LOW"},
		{"low at zero", 0, "LOW"},
		{"low for negative", -1.0, "LOW"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier := SeverityTier(tc.value)
			assert.Equal(t, tc.label, tier.Label)
			assert.NotEmpty(t, tier.Icon)
		})
	}
}

func TestCloudBadge(t *testing.T) {
	text, badge := CloudBadge(30, true, 70)
	assert.Equal(t, "30%", text)
	assert.Equal(t, "✅", badge)

	text, badge = CloudBadge(90, true, 70)
	assert.Equal(t, "90%", text)
	assert.Equal(t, "❌", badge)

	text, badge = CloudBadge(0, false, 70)
	assert.Equal(t, Unknown, text)
	assert.Equal(t, "⚪", badge)
}

func TestNightBadge(t *testing.T) {
	text, badge := NightBadge(true)
	assert.Equal(t, "NIGHT", text)
	assert.Equal(t, "✅", badge)

	text, badge = NightBadge(false)
	assert.Equal(t, "DAY", text)
	assert.Equal(t, "❌", badge)
}

func TestTierGlyph(t *testing.T) {
	assert.Equal(t, "🟢", TierHigh.Glyph())
	assert.Equal(t, "🟡", TierMedium.Glyph())
	assert.Equal(t, "🔴", TierLow.Glyph())
}

func TestHourlySeriesValid(t *testing.T) {
	valid := HourlySeries{
		Times:      []string{"2026-03-01T22:00"},
		CloudCover: []int{10},
		IsDay:      []int{0},
	}
	assert.True(t, valid.Valid())

	assert.False(t, HourlySeries{}.Valid())

	mismatched := HourlySeries{
		Times:      []string{"2026-03-01T22:00", "2026-03-01T23:00"},
		CloudCover: []int{10},
		IsDay:      []int{0, 0},
	}
	assert.False(t, mismatched.Valid())
}
