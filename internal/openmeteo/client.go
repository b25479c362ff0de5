// Package openmeteo fetches sky conditions (cloud cover and daylight) for a
// fixed location: the current sample that gates real-time alerts, and the
// hourly series searched for an observation window around a forecast peak.
package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"aurorawatch/internal/fetch"
	"aurorawatch/internal/models"
)

// DefaultBaseURL is the public Open-Meteo forecast API.
const DefaultBaseURL = "https://api.open-meteo.com"

// Client provides access to the Open-Meteo forecast API for one location.
type Client struct {
	baseURL    string
	latitude   float64
	longitude  float64
	timezone   string
	httpClient *http.Client
}

// NewClient creates a new Open-Meteo client bound to a location and zone.
// An empty baseURL falls back to the public API.
func NewClient(baseURL string, latitude, longitude float64, timezone string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		latitude:   latitude,
		longitude:  longitude,
		timezone:   timezone,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CurrentConditions is the real-time sky sample used by the NOW gate.
type CurrentConditions struct {
	IsNight    bool
	CloudCover int
	SampleTime string
}

type currentResponse struct {
	Current struct {
		Time       string `json:"time"`
		CloudCover *int   `json:"cloud_cover"`
		IsDay      *int   `json:"is_day"`
	} `json:"current"`
}

type hourlyResponse struct {
	UTCOffsetSeconds int `json:"utc_offset_seconds"`
	Hourly           struct {
		Time       []string `json:"time"`
		CloudCover []int    `json:"cloud_cover"`
		IsDay      []int    `json:"is_day"`
	} `json:"hourly"`
}

// Current fetches the present cloud cover and daylight state. Missing fields
// default pessimistically (daylight, fully clouded) so a thin response can
// never open the gate.
func (c *Client) Current(ctx context.Context) (CurrentConditions, error) {
	u := fmt.Sprintf("%s/v1/forecast?latitude=%v&longitude=%v&current=cloud_cover,is_day&timezone=%s",
		c.baseURL, c.latitude, c.longitude, url.QueryEscape(c.timezone))

	var resp currentResponse
	if err := fetch.Decode(ctx, c.httpClient, u, &resp); err != nil {
		return CurrentConditions{}, fmt.Errorf("sky conditions feed: %w", err)
	}

	isDay := 1
	if resp.Current.IsDay != nil {
		isDay = *resp.Current.IsDay
	}
	cloud := 100
	if resp.Current.CloudCover != nil {
		cloud = *resp.Current.CloudCover
	}

	return CurrentConditions{
		IsNight:    isDay == 0,
		CloudCover: cloud,
		SampleTime: resp.Current.Time,
	}, nil
}

// Hourly fetches the two-day hourly cloud/daylight series in the location's
// local zone, together with the zone's UTC offset for window math.
func (c *Client) Hourly(ctx context.Context) (models.HourlySeries, error) {
	u := fmt.Sprintf("%s/v1/forecast?latitude=%v&longitude=%v&hourly=cloud_cover,is_day&forecast_days=2&timezone=%s",
		c.baseURL, c.latitude, c.longitude, url.QueryEscape(c.timezone))

	var resp hourlyResponse
	if err := fetch.Decode(ctx, c.httpClient, u, &resp); err != nil {
		return models.HourlySeries{}, fmt.Errorf("sky forecast feed: %w", err)
	}

	return models.HourlySeries{
		Times:            resp.Hourly.Time,
		CloudCover:       resp.Hourly.CloudCover,
		IsDay:            resp.Hourly.IsDay,
		UTCOffsetSeconds: resp.UTCOffsetSeconds,
	}, nil
}
