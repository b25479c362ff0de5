// Command aurorawatch runs one aurora-alert evaluation pass: fetch the
// geomagnetic feeds and sky conditions, decide whether NOW or FORECAST
// conditions warrant an alert, send it, and persist the cooldown ledger.
// Scheduling is external (cron or a systemd timer); the process always runs
// to completion and exits.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"aurorawatch/internal/config"
	"aurorawatch/internal/decision"
	"aurorawatch/internal/ledger"
	"aurorawatch/internal/logger"
	"aurorawatch/internal/models"
	"aurorawatch/internal/notify"
	"aurorawatch/internal/openmeteo"
	"aurorawatch/internal/swpc"
	"aurorawatch/internal/timeutil"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

// errAllChannelsFailed means the alert was decided but nothing delivered it;
// the ledger stays untouched so the next run retries.
var errAllChannelsFailed = errors.New("all notification channels failed")

func main() {
	flag.Parse()

	// Credentials usually arrive through a .env file next to the binary.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	channels := buildChannels(cfg)

	renderer, err := notify.NewRenderer(cfg.Location.Name)
	if err != nil {
		logger.Fatal("Failed to initialize renderer: %v", err)
	}

	swpcClient := swpc.NewClient(cfg.Feeds.CurrentURL, cfg.Feeds.ForecastURL, cfg.Feeds.NowcastURL, cfg.Feeds.Timeout)
	skyClient := openmeteo.NewClient(cfg.Feeds.OpenMeteoURL,
		cfg.Location.Latitude, cfg.Location.Longitude, cfg.Location.Timezone, cfg.Feeds.Timeout)

	if err := run(context.Background(), cfg, swpcClient, skyClient, renderer, channels); err != nil {
		logger.Fatal("Run failed: %v", err)
	}
}

// buildChannels wires the enabled notification channels. Channel construction
// failures are configuration errors and fatal.
func buildChannels(cfg *config.Config) []notify.Channel {
	var channels []notify.Channel
	if cfg.Email.Enabled {
		ch, err := notify.NewEmailChannel(notify.EmailConfig{
			Host:       cfg.Email.Host,
			Port:       cfg.Email.Port,
			Username:   cfg.Email.Username,
			Password:   cfg.Email.Password,
			From:       cfg.Email.From,
			Recipients: cfg.Email.Recipients,
		})
		if err != nil {
			logger.Fatal("Failed to initialize email channel: %v", err)
		}
		channels = append(channels, ch)
	}
	if cfg.Telegram.Enabled {
		ch, err := notify.NewTelegramChannel(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Fatal("Failed to initialize telegram channel: %v", err)
		}
		channels = append(channels, ch)
	}
	return channels
}

// run is the single evaluation pass: strictly sequential, no background work.
func run(ctx context.Context, cfg *config.Config, swpcClient *swpc.Client, skyClient *openmeteo.Client, renderer *notify.Renderer, channels []notify.Channel) error {
	led := ledger.Load(cfg.Ledger.Path)

	// Sky gate and the primary index feeds are run-fatal; the nowcast is
	// best-effort and degrades to no reading.
	sky, err := skyClient.Current(ctx)
	if err != nil {
		return err
	}
	current, err := swpcClient.CurrentIndex(ctx)
	if err != nil {
		return err
	}
	peak, hasPeak, err := swpcClient.ForecastPeakNextHours(ctx, cfg.Alerts.ForecastHorizonHours)
	if err != nil {
		return err
	}
	var nowcast *models.Reading
	if cfg.Alerts.NowcastEnabled {
		nowcast = swpcClient.Nowcast(ctx)
	}

	logger.Debug("Readings: current=%.1f (%s) peak=%.1f (%s, found=%v) night=%v cloud=%d%%",
		current.Value, current.TimeTag, peak.Value, peak.TimeTag, hasPeak, sky.IsNight, sky.CloudCover)

	engine := decision.New(decision.Config{
		NowMinIndex:             cfg.Thresholds.NowMinIndex,
		ForecastMinIndex:        cfg.Thresholds.ForecastMinIndex,
		MaxCloudCover:           cfg.Thresholds.MaxCloudCover,
		NowCooldownSeconds:      cfg.Alerts.NowCooldownSeconds,
		ForecastCooldownSeconds: cfg.Alerts.ForecastCooldownSeconds,
		PeakWindowHours:         cfg.Alerts.PeakWindowHours,
	}, skyClient, led)

	verdict, err := engine.Evaluate(ctx, decision.Inputs{
		Current:         current,
		ForecastPeak:    peak,
		HasForecastPeak: hasPeak,
		Nowcast:         nowcast,
		IsNightNow:      sky.IsNight,
		CloudNow:        sky.CloudCover,
	})
	if err != nil {
		return err
	}

	if !verdict.FireNow && !verdict.FireForecast {
		logger.Info("No new alerts to send")
		return nil
	}

	payload := models.AlertPayload{
		ID:            uuid.New().String(),
		Priority:      verdict.Priority,
		FireNow:       verdict.FireNow,
		FireForecast:  verdict.FireForecast,
		Current:       current,
		Nowcast:       nowcast,
		IsNightNow:    sky.IsNight,
		CloudNow:      sky.CloudCover,
		SkyTimeNow:    sky.SampleTime,
		NowGateOK:     verdict.NowGateOK,
		ForecastPeak:  peak,
		Window:        verdict.Window,
		Latitude:      cfg.Location.Latitude,
		Longitude:     cfg.Location.Longitude,
		Timezone:      cfg.Location.Timezone,
		MaxCloudCover: cfg.Thresholds.MaxCloudCover,
		HorizonHours:  cfg.Alerts.ForecastHorizonHours,
		WindowHours:   cfg.Alerts.PeakWindowHours,
	}

	msg, err := renderer.Render(payload)
	if err != nil {
		return err
	}

	// The ledger is only updated after at least one channel confirms
	// delivery, so a failed send never suppresses the next attempt.
	delivered := 0
	for _, ch := range channels {
		if err := ch.Send(ctx, msg); err != nil {
			logger.Error("Send via %s failed: %v", ch.Name(), err)
			continue
		}
		logger.Info("Sent alert via %s (id=%s)", ch.Name(), payload.ID)
		delivered++
	}
	if delivered == 0 {
		return errAllChannelsFailed
	}

	now := timeutil.NowUTC().Unix()
	if verdict.FireNow {
		led.RecordFire(models.ClassNow, now)
	}
	if verdict.FireForecast {
		led.RecordFire(models.ClassForecast, now)
		led.RecordForecastPeak(peak.TimeTag)
	}
	if err := ledger.Save(cfg.Ledger.Path, led); err != nil {
		return err
	}

	logger.Info("Alert dispatched: now=%v forecast=%v priority=%s subject=%q",
		verdict.FireNow, verdict.FireForecast, verdict.Priority, msg.Subject)
	return nil
}
