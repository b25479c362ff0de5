package decision

import (
	"context"
	"fmt"

	"aurorawatch/internal/ledger"
	"aurorawatch/internal/logger"
	"aurorawatch/internal/models"
	"aurorawatch/internal/timeutil"
)

// SkySource supplies the hourly sky forecast. It is only consulted when the
// forecast threshold is met, so the orchestrator can hand in a live client
// without paying for the fetch on quiet runs.
type SkySource interface {
	Hourly(ctx context.Context) (models.HourlySeries, error)
}

// Config holds the decision thresholds and cooldowns.
type Config struct {
	NowMinIndex      float64
	ForecastMinIndex float64
	MaxCloudCover    int

	NowCooldownSeconds      int64
	ForecastCooldownSeconds int64
	PeakWindowHours         int
}

// Inputs are the normalized per-run observations the engine decides on.
type Inputs struct {
	Current         models.Reading
	ForecastPeak    models.Reading
	HasForecastPeak bool
	Nowcast         *models.Reading

	IsNightNow bool
	CloudNow   int
}

// Decision is the engine's verdict for one run. The engine never mutates the
// ledger; the orchestrator records fires only after a confirmed send.
type Decision struct {
	FireNow      bool
	FireForecast bool
	NowGateOK    bool
	Window       models.WindowResult
	Priority     models.Tier
}

// Engine evaluates alert conditions against configuration and ledger state.
type Engine struct {
	cfg    Config
	sky    SkySource
	ledger *ledger.Ledger
}

// New creates a decision engine.
func New(cfg Config, sky SkySource, led *ledger.Ledger) *Engine {
	return &Engine{cfg: cfg, sky: sky, ledger: led}
}

// Evaluate runs the NOW and FORECAST decisions for one invocation. The two
// alert classes are independent; both may fire in the same run. The returned
// error is run-fatal (it can only come from the sky forecast fetch).
func (e *Engine) Evaluate(ctx context.Context, in Inputs) (Decision, error) {
	now := timeutil.NowUTC().Unix()

	d := Decision{
		NowGateOK: NowGate(in.IsNightNow, in.CloudNow, e.cfg.MaxCloudCover),
	}

	// NOW: threshold crossing, then the sky gate, then the cooldown.
	if in.Current.Value >= e.cfg.NowMinIndex {
		switch {
		case !d.NowGateOK:
			logger.Info("NOW: index %.1f meets threshold but the sky gate blocks (night=%v cloud=%d%%)",
				in.Current.Value, in.IsNightNow, in.CloudNow)
		case !e.ledger.MayFire(models.ClassNow, e.cfg.NowCooldownSeconds, now):
			logger.Info("NOW: index %.1f meets threshold but cooldown is active", in.Current.Value)
		default:
			d.FireNow = true
		}
	}

	// FORECAST: threshold crossing with a parseable peak instant, then a
	// usable observation window, then the cooldown. The peak-identity change
	// is logged but does not bypass the cooldown.
	if in.HasForecastPeak && in.ForecastPeak.Instant != nil && in.ForecastPeak.Value >= e.cfg.ForecastMinIndex {
		series, err := e.sky.Hourly(ctx)
		if err != nil {
			return Decision{}, fmt.Errorf("evaluate forecast window: %w", err)
		}
		d.Window = LocateBestWindow(series, *in.ForecastPeak.Instant,
			e.cfg.PeakWindowHours, e.cfg.MaxCloudCover, series.UTCOffsetSeconds)

		switch {
		case !d.Window.Found:
			logger.Info("FORECAST: peak %.1f at %s meets threshold but no dark slot with cloud <= %d%% within ±%dh",
				in.ForecastPeak.Value, in.ForecastPeak.TimeTag, e.cfg.MaxCloudCover, e.cfg.PeakWindowHours)
		case !e.ledger.MayFire(models.ClassForecast, e.cfg.ForecastCooldownSeconds, now):
			if e.ledger.PeakChanged(in.ForecastPeak.TimeTag) {
				logger.Debug("FORECAST: peak identity changed to %s while cooldown active", in.ForecastPeak.TimeTag)
			}
			logger.Info("FORECAST: peak %.1f at %s meets threshold but cooldown is active",
				in.ForecastPeak.Value, in.ForecastPeak.TimeTag)
		default:
			d.FireForecast = true
		}
	}

	var nowcastValue *float64
	if in.Nowcast != nil {
		v := in.Nowcast.Value
		nowcastValue = &v
	}
	d.Priority = PickPriority(d.FireNow, d.FireForecast, d.NowGateOK, d.Window.Found, nowcastValue)

	return d, nil
}
