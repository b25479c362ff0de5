package swpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurorawatch/internal/timeutil"
)

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CurrentIndex(t *testing.T) {
	srv := jsonServer(t, http.StatusOK,
		`[["time_tag","kp"],["2026-03-01 18:00:00.000","5.33"],["2026-03-01 21:00:00.000","6.67"]]`)
	c := NewClient(srv.URL, "", "", 5*time.Second)

	reading, err := c.CurrentIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6.67, reading.Value)
	assert.Equal(t, "2026-03-01 21:00:00.000", reading.TimeTag)
}

func TestClient_CurrentIndex_Failures(t *testing.T) {
	t.Run("http error is fatal", func(t *testing.T) {
		srv := jsonServer(t, http.StatusBadGateway, `oops`)
		c := NewClient(srv.URL, "", "", 5*time.Second)
		_, err := c.CurrentIndex(context.Background())
		assert.Error(t, err)
	})

	t.Run("unrecognized payload is fatal", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `"not a feed"`)
		c := NewClient(srv.URL, "", "", 5*time.Second)
		_, err := c.CurrentIndex(context.Background())
		assert.Error(t, err)
	})
}

func TestClient_ForecastPeakNextHours(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeutil.SetClock(clockwork.NewFakeClockAt(now))
	defer timeutil.SetClock(nil)

	srv := jsonServer(t, http.StatusOK,
		`[["time_tag","kp"],["2026-03-01 15:00:00","6.3"],["2026-03-01 21:00:00","7.2"],["2026-03-03 09:00:00","9.0"]]`)
	c := NewClient("", srv.URL, "", 5*time.Second)

	peak, found, err := c.ForecastPeakNextHours(context.Background(), 24)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 7.2, peak.Value)
}

func TestClient_Nowcast(t *testing.T) {
	t.Run("reading from record list", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK,
			`[{"time_tag":"2026-03-01T21:00:00Z","estimated_kp":7.52}]`)
		c := NewClient("", "", srv.URL, 5*time.Second)
		reading := c.Nowcast(context.Background())
		require.NotNil(t, reading)
		assert.Equal(t, 7.52, reading.Value)
	})

	t.Run("fetch failure degrades to no reading", func(t *testing.T) {
		srv := jsonServer(t, http.StatusServiceUnavailable, ``)
		c := NewClient("", "", srv.URL, 5*time.Second)
		assert.Nil(t, c.Nowcast(context.Background()))
	})

	t.Run("unrecognized payload degrades to no reading", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `{"status":"ok"}`)
		c := NewClient("", "", srv.URL, 5*time.Second)
		assert.Nil(t, c.Nowcast(context.Background()))
	})
}
