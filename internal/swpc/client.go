package swpc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"aurorawatch/internal/fetch"
	"aurorawatch/internal/logger"
	"aurorawatch/internal/models"
	"aurorawatch/internal/timeutil"
)

// Default SWPC endpoints. Overridable through configuration, mostly for tests.
const (
	DefaultCurrentURL  = "https://services.swpc.noaa.gov/products/noaa-planetary-k-index.json"
	DefaultForecastURL = "https://services.swpc.noaa.gov/products/noaa-planetary-k-index-forecast.json"
	DefaultNowcastURL  = "https://services.swpc.noaa.gov/json/planetary_k_index_1m.json"
)

// Client provides access to the SWPC geomagnetic index feeds.
type Client struct {
	currentURL  string
	forecastURL string
	nowcastURL  string
	httpClient  *http.Client
}

// NewClient creates a new SWPC client. Empty URLs fall back to the defaults.
func NewClient(currentURL, forecastURL, nowcastURL string, timeout time.Duration) *Client {
	if currentURL == "" {
		currentURL = DefaultCurrentURL
	}
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	if nowcastURL == "" {
		nowcastURL = DefaultNowcastURL
	}
	return &Client{
		currentURL:  currentURL,
		forecastURL: forecastURL,
		nowcastURL:  nowcastURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// CurrentIndex fetches the observed planetary index feed and normalizes its
// last reading. This is the primary feed: any failure here is run-fatal for
// the caller.
func (c *Client) CurrentIndex(ctx context.Context) (models.Reading, error) {
	raw, err := fetch.JSON(ctx, c.httpClient, c.currentURL)
	if err != nil {
		return models.Reading{}, fmt.Errorf("current index feed: %w", err)
	}
	reading := Normalize(raw)
	if reading == nil {
		return models.Reading{}, fmt.Errorf("current index feed: unrecognized payload shape")
	}
	return *reading, nil
}

// ForecastPeakNextHours fetches the forecast feed and returns the maximum
// predicted reading within the horizon. The bool is false when no forecast
// row falls inside the horizon; a fetch failure is run-fatal for the caller.
func (c *Client) ForecastPeakNextHours(ctx context.Context, horizonHours int) (models.Reading, bool, error) {
	raw, err := fetch.JSON(ctx, c.httpClient, c.forecastURL)
	if err != nil {
		return models.Reading{}, false, fmt.Errorf("forecast feed: %w", err)
	}
	peak, found := ForecastPeak(raw, horizonHours, timeutil.NowUTC())
	return peak, found, nil
}

// Nowcast fetches the 1-minute estimated index. The nowcast is best-effort:
// fetch failures and unrecognized payloads both degrade to no reading.
func (c *Client) Nowcast(ctx context.Context) *models.Reading {
	raw, err := fetch.JSON(ctx, c.httpClient, c.nowcastURL)
	if err != nil {
		logger.Warn("nowcast feed unavailable: %v", err)
		return nil
	}
	reading := Normalize(raw)
	if reading == nil {
		logger.Debug("nowcast feed returned no usable reading")
	}
	return reading
}
