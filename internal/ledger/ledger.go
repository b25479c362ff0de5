// Package ledger persists the small last-sent state that gates alert
// deduplication: one cooldown timestamp per alert class plus the identity of
// the last forecast peak that was notified.
//
// The ledger is the only durable state in the system. It is loaded fresh at
// the start of every run and trusted as ground truth; saving uses a
// write-to-temporary-then-rename discipline so a crash mid-write never leaves
// a partial file visible to the next run.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"aurorawatch/internal/logger"
	"aurorawatch/internal/models"
)

// ForecastState tracks the identity of the last forecast peak that fired.
type ForecastState struct {
	LastPeakTime string `json:"last_peak_time,omitempty"`
}

// Ledger holds per-class last-sent timestamps (epoch seconds) and the
// forecast dedup state. Values are never rewound within a process lifetime.
type Ledger struct {
	LastSent map[models.AlertClass]int64 `json:"last_sent"`
	Forecast ForecastState               `json:"forecast"`
}

// New returns an empty ledger with no alert ever recorded.
func New() *Ledger {
	return &Ledger{LastSent: make(map[models.AlertClass]int64)}
}

// Load reads the ledger from path. A missing or corrupt file yields an empty
// ledger, never a run failure: losing dedup state costs at most one duplicate
// alert, while aborting costs the alert itself. Stale temp files from a
// crashed previous run are cleaned up.
func Load(path string) *Ledger {
	tempPath := path + ".tmp"
	if _, err := os.Stat(tempPath); err == nil {
		_ = os.Remove(tempPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("ledger %s unreadable, starting empty: %v", path, err)
		}
		return New()
	}

	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		logger.Warn("ledger %s corrupt, starting empty: %v", path, err)
		return New()
	}
	if l.LastSent == nil {
		l.LastSent = make(map[models.AlertClass]int64)
	}
	return &l
}

// Save writes the ledger to path atomically: marshal, write a sibling temp
// file, rename over the target. The parent directory is created when needed.
func Save(path string, l *Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write ledger temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}

// MayFire reports whether the cooldown for class has elapsed at now (epoch
// seconds). A class that never fired has last-sent 0 and always passes.
func (l *Ledger) MayFire(class models.AlertClass, cooldownSeconds int64, now int64) bool {
	return now-l.LastSent[class] >= cooldownSeconds
}

// RecordFire marks class as sent at now. Call only after a confirmed
// successful send, so a failed delivery never suppresses the next attempt.
func (l *Ledger) RecordFire(class models.AlertClass, now int64) {
	if l.LastSent == nil {
		l.LastSent = make(map[models.AlertClass]int64)
	}
	l.LastSent[class] = now
}

// PeakChanged reports whether peakIdentity differs from the last notified
// forecast peak. The current policy applies the same cooldown check either
// way, so this has no effect on firing; it is kept visible for logging.
func (l *Ledger) PeakChanged(peakIdentity string) bool {
	return l.Forecast.LastPeakTime != peakIdentity
}

// RecordForecastPeak stores the identity (raw feed timestamp) of the peak a
// forecast alert was just sent for.
func (l *Ledger) RecordForecastPeak(peakIdentity string) {
	l.Forecast.LastPeakTime = peakIdentity
}
