package models

// Tier is the traffic-light priority of an alert.
type Tier int

const (
	// TierLow marks alerts where neither real-time nor forecast conditions
	// line up with an observable sky.
	TierLow Tier = iota
	// TierMedium marks forecast-only alerts with a usable observation window.
	TierMedium
	// TierHigh marks alerts that are actionable right now.
	TierHigh
)

// Glyph returns the traffic-light symbol used in subjects and summaries.
func (t Tier) Glyph() string {
	switch t {
	case TierHigh:
		return "🟢"
	case TierMedium:
		return "🟡"
	default:
		return "🔴"
	}
}

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// AlertClass identifies an independent alert stream with its own cooldown
// timer in the ledger.
type AlertClass string

const (
	// ClassNow is the real-time alert: the current index crossed the
	// threshold and the sky gate passes.
	ClassNow AlertClass = "NOW"
	// ClassForecast is the scheduled alert: the forecast peak crosses the
	// threshold and a dark, clear-enough slot exists around it.
	ClassForecast AlertClass = "FORECAST"
)

// AlertPayload is the fully-decided input handed to notification channels.
// The decision core fills it with canonical values only; all presentation
// happens in the notify renderer.
type AlertPayload struct {
	ID       string `json:"id"`
	Priority Tier   `json:"priority"`

	FireNow      bool `json:"fire_now"`
	FireForecast bool `json:"fire_forecast"`

	Current Reading  `json:"current"`
	Nowcast *Reading `json:"nowcast,omitempty"`

	IsNightNow bool   `json:"is_night_now"`
	CloudNow   int    `json:"cloud_now"`
	SkyTimeNow string `json:"sky_time_now"`
	NowGateOK  bool   `json:"now_gate_ok"`

	ForecastPeak Reading      `json:"forecast_peak"`
	Window       WindowResult `json:"window"`

	// Configuration echoes needed for display.
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Timezone      string  `json:"timezone"`
	MaxCloudCover int     `json:"max_cloud_cover"`
	HorizonHours  int     `json:"horizon_hours"`
	WindowHours   int     `json:"window_hours"`
}
