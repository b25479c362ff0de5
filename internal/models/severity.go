package models

import "fmt"

// Severity is the categorical tier of an activity value, as a display label
// plus icon. The decision core produces nothing more presentational than this
// pair; rendering belongs to the notify package.
type Severity struct {
	Label string
	Icon  string
}

// SeverityTier maps an activity index to its severity tier. Thresholds are
// inclusive lower bounds scanned from the highest, so the function is total
// over all reals: anything below 5 (including negatives) is low.
func SeverityTier(value float64) Severity {
	switch {
	case value >= 8:
		return Severity{Label: "EXTREME", Icon: "🔥"}
	case value >= 7:
		return Severity{Label: "VERY HIGH", Icon: "🚀"}
	case value >= 6:
		return Severity{Label: "HIGH", Icon: "✨"}
	case value >= 5:
		return Severity{Label: "MODERATE", Icon: "🌙"}
	default:
		return Severity{Label: "LOW", Icon: "🫥"}
	}
}

// Unknown is the placeholder shown for absent values.
const Unknown = "—"

// CloudBadge formats a cloud-cover percentage with a pass/fail icon against
// the configured ceiling. hasValue=false yields the unknown placeholder.
func CloudBadge(cloud int, hasValue bool, maxCloud int) (string, string) {
	if !hasValue {
		return Unknown, "⚪"
	}
	if cloud <= maxCloud {
		return fmt.Sprintf("%d%%", cloud), "✅"
	}
	return fmt.Sprintf("%d%%", cloud), "❌"
}

// NightBadge formats the darkness gate state with a pass/fail icon.
func NightBadge(isNight bool) (string, string) {
	if isNight {
		return "NIGHT", "✅"
	}
	return "DAY", "❌"
}
