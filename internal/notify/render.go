package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"aurorawatch/internal/models"
	"aurorawatch/internal/timeutil"
)

//go:embed templates/alert.txt templates/alert.html
var templateFS embed.FS

// Renderer turns an AlertPayload into a subject plus text and HTML bodies.
// Templates are embedded; parse failures surface at construction time.
type Renderer struct {
	locationName string
	text         *texttemplate.Template
	html         *htmltemplate.Template
}

// NewRenderer creates a renderer for the given display location name.
func NewRenderer(locationName string) (*Renderer, error) {
	text, err := texttemplate.ParseFS(templateFS, "templates/alert.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}
	html, err := htmltemplate.ParseFS(templateFS, "templates/alert.html")
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	return &Renderer{locationName: locationName, text: text, html: html}, nil
}

// templateData is the flattened, display-ready view of an alert handed to
// both templates.
type templateData struct {
	Location  string
	Latitude  string
	Longitude string
	Timezone  string
	Priority  string

	CurrentValue string
	CurrentLevel string
	CurrentIcon  string
	CurrentLocal string
	CurrentAge   string
	CurrentUTC   string

	HasNowcast   bool
	NowcastValue string
	NowcastLevel string
	NowcastLocal string
	NowcastAge   string

	NightText  string
	NightBadge string
	CloudText  string
	CloudBadge string
	SkyTime    string

	HorizonHours  int
	ForecastValue string
	ForecastLevel string
	ForecastIcon  string
	PeakLocal     string
	PeakUTC       string

	WindowHours int
	WindowOK    bool
	WindowTime  string
	WindowCloud string
	WindowBadge string

	Recommendation string
}

// Render builds the subject and both bodies for a decided alert.
func (r *Renderer) Render(p models.AlertPayload) (Message, error) {
	data := r.buildData(p)

	var textBuf bytes.Buffer
	if err := r.text.Execute(&textBuf, data); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}
	var htmlBuf bytes.Buffer
	if err := r.html.Execute(&htmlBuf, data); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	return Message{
		Subject:  r.subject(p),
		TextBody: textBuf.String(),
		HTMLBody: htmlBuf.String(),
	}, nil
}

// subject composes the traffic-light subject line with the key numbers for
// whichever classes fired.
func (r *Renderer) subject(p models.AlertPayload) string {
	glyph := p.Priority.Glyph()
	switch {
	case p.FireNow && p.FireForecast:
		return fmt.Sprintf("%s Aurora %s — NOW Kp%.1f · Fc Kp%.1f", glyph, r.locationName, p.Current.Value, p.ForecastPeak.Value)
	case p.FireNow:
		return fmt.Sprintf("%s Aurora %s — NOW Kp%.1f", glyph, r.locationName, p.Current.Value)
	default:
		return fmt.Sprintf("%s Aurora %s — Forecast Kp%.1f", glyph, r.locationName, p.ForecastPeak.Value)
	}
}

func (r *Renderer) buildData(p models.AlertPayload) templateData {
	currentTier := models.SeverityTier(p.Current.Value)
	forecastValue := p.ForecastPeak.Value
	if forecastValue < 0 {
		forecastValue = 0
	}
	forecastTier := models.SeverityTier(forecastValue)

	nightText, nightBadge := models.NightBadge(p.IsNightNow)
	cloudText, cloudBadge := models.CloudBadge(p.CloudNow, true, p.MaxCloudCover)
	windowCloud, windowBadge := models.CloudBadge(p.Window.CloudCover, p.Window.Found, p.MaxCloudCover)

	data := templateData{
		Location:  r.locationName,
		Latitude:  fmt.Sprintf("%.2f", p.Latitude),
		Longitude: fmt.Sprintf("%.2f", p.Longitude),
		Timezone:  p.Timezone,
		Priority:  p.Priority.Glyph(),

		CurrentValue: fmt.Sprintf("%.1f", p.Current.Value),
		CurrentLevel: currentTier.Label,
		CurrentIcon:  currentTier.Icon,
		CurrentLocal: timeutil.ToLocal(p.Current.Instant, p.Timezone),
		CurrentAge:   timeutil.Age(p.Current.Instant),
		CurrentUTC:   strings.Replace(p.Current.TimeTag, ".000", "", 1),

		NightText:  nightText,
		NightBadge: nightBadge,
		CloudText:  cloudText,
		CloudBadge: cloudBadge,
		SkyTime:    timeutil.PrettyLocal(p.SkyTimeNow),

		HorizonHours:  p.HorizonHours,
		ForecastValue: fmt.Sprintf("%.1f", p.ForecastPeak.Value),
		ForecastLevel: forecastTier.Label,
		ForecastIcon:  forecastTier.Icon,
		PeakLocal:     timeutil.ToLocal(p.ForecastPeak.Instant, p.Timezone),
		PeakUTC:       p.ForecastPeak.TimeTag,

		WindowHours: p.WindowHours,
		WindowOK:    p.Window.Found,
		WindowTime:  timeutil.PrettyLocal(p.Window.LocalTime),
		WindowCloud: windowCloud,
		WindowBadge: windowBadge,

		Recommendation: r.recommendation(p),
	}

	// The nowcast row only appears when a reading with a parsed instant exists.
	if p.Nowcast != nil && p.Nowcast.Instant != nil {
		nowcastTier := models.SeverityTier(p.Nowcast.Value)
		data.HasNowcast = true
		data.NowcastValue = fmt.Sprintf("%.1f", p.Nowcast.Value)
		data.NowcastLevel = nowcastTier.Label
		data.NowcastLocal = timeutil.ToLocal(p.Nowcast.Instant, p.Timezone)
		data.NowcastAge = timeutil.Age(p.Nowcast.Instant)
	}

	return data
}

// recommendation composes the action line: go out now, aim for the window,
// or the generic fallback when neither specific advice applies.
func (r *Renderer) recommendation(p models.AlertPayload) string {
	var lines []string
	if p.FireNow && p.NowGateOK {
		lines = append(lines, "Go out now: conditions are favorable.")
	}
	if p.FireForecast && p.Window.Found {
		lines = append(lines, fmt.Sprintf("Best window: %s (clouds %d%%).",
			timeutil.PrettyLocal(p.Window.LocalTime), p.Window.CloudCover))
	}
	if len(lines) == 0 {
		lines = append(lines, "Check the northern sky away from city lights.")
	}
	return strings.Join(lines, " ")
}
