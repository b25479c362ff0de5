package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "aurorawatch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[["time_tag","kp"],["2026-03-01 21:00:00.000","6.33"]]`))
	}))
	defer srv.Close()

	v, err := JSON(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)

	rows, ok := v.([]any)
	require.True(t, ok)
	assert.Len(t, rows, 2)
}

func TestJSON_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := JSON(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadGateway, fe.Status)
	assert.Contains(t, fe.Error(), "status 502")
}

func TestJSON_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := JSON(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.Status)
}

func TestDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"utc_offset_seconds":3600}`))
	}))
	defer srv.Close()

	var out struct {
		UTCOffsetSeconds int `json:"utc_offset_seconds"`
	}
	require.NoError(t, Decode(context.Background(), srv.Client(), srv.URL, &out))
	assert.Equal(t, 3600, out.UTCOffsetSeconds)
}

func TestDecode_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]any
	err := Decode(ctx, srv.Client(), srv.URL, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
