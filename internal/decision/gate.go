// Package decision contains the alert decision core: the real-time sky gate,
// the peak observation window search, the traffic-light priority ladder, and
// the engine that combines them with the cooldown ledger into a per-run
// verdict.
package decision

import "aurorawatch/internal/models"

// strongNowcastIndex is the nowcast level that forces high priority on its
// own, overriding a weaker scheduled NOW determination.
const strongNowcastIndex = 7.0

// NowGate reports whether the sky is observable right now: dark and with
// cloud cover at or below the ceiling.
func NowGate(isNight bool, cloudCover, maxCloud int) bool {
	return isNight && cloudCover <= maxCloud
}

// PickPriority resolves the alert tier. The rules are evaluated in strict
// order; a strong real-time nowcast with an open gate outranks everything:
//
//  1. high   — nowcast present, >= 7.0, and the gate passes
//  2. high   — NOW fires and the gate passes
//  3. medium — only FORECAST fires and a usable window exists
//  4. low    — otherwise
func PickPriority(nowFires, forecastFires, nowGateOK, windowOK bool, nowcast *float64) models.Tier {
	if nowcast != nil && *nowcast >= strongNowcastIndex && nowGateOK {
		return models.TierHigh
	}
	if nowFires && nowGateOK {
		return models.TierHigh
	}
	if !nowFires && forecastFires && windowOK {
		return models.TierMedium
	}
	return models.TierLow
}
