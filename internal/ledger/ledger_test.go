package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurorawatch/internal/models"
)

func TestMayFire_Cooldown(t *testing.T) {
	l := New()
	now := int64(1_900_000_000)

	assert.True(t, l.MayFire(models.ClassNow, 7200, now), "never fired passes")

	l.RecordFire(models.ClassNow, now)
	assert.False(t, l.MayFire(models.ClassNow, 7200, now))
	assert.False(t, l.MayFire(models.ClassNow, 7200, now+7199))
	assert.True(t, l.MayFire(models.ClassNow, 7200, now+7200), "boundary is inclusive")

	// Classes are independent.
	assert.True(t, l.MayFire(models.ClassForecast, 21600, now))
}

func TestPeakChanged(t *testing.T) {
	l := New()
	assert.True(t, l.PeakChanged("2026-03-01 20:00:00.000"))

	l.RecordForecastPeak("2026-03-01 20:00:00.000")
	assert.False(t, l.PeakChanged("2026-03-01 20:00:00.000"))
	assert.True(t, l.PeakChanged("2026-03-01 23:00:00.000"))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "alert_state.json")

	l := New()
	l.RecordFire(models.ClassNow, 1_900_000_000)
	l.RecordFire(models.ClassForecast, 1_900_001_000)
	l.RecordForecastPeak("2026-03-01 20:00:00.000")
	require.NoError(t, Save(path, l))

	got := Load(path)
	assert.Equal(t, int64(1_900_000_000), got.LastSent[models.ClassNow])
	assert.Equal(t, int64(1_900_001_000), got.LastSent[models.ClassForecast])
	assert.Equal(t, "2026-03-01 20:00:00.000", got.Forecast.LastPeakTime)

	// No temp file left behind.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_MissingFile(t *testing.T) {
	l := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NotNil(t, l)
	assert.Empty(t, l.LastSent)
	assert.True(t, l.MayFire(models.ClassNow, 7200, 1_900_000_000))
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alert_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	l := Load(path)
	require.NotNil(t, l)
	assert.Empty(t, l.LastSent)
}

func TestLoad_RemovesStaleTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alert_state.json")
	require.NoError(t, os.WriteFile(path+".tmp", []byte("partial"), 0o644))

	Load(path)

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_NilMapNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alert_state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"forecast":{}}`), 0o644))

	l := Load(path)
	require.NotNil(t, l.LastSent)
	l.RecordFire(models.ClassNow, 1) // must not panic
}
