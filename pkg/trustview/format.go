package trustview

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NoDateAvailable is rendered for any absent or unparseable timestamp.
const NoDateAvailable = "No date available"

// ClampScore forces a pulse score into [0,100]. Out-of-range values are a
// data error upstream, never a reason to crash the view.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// StarRating derives the 0.0–5.0 star rating shown next to the seller name.
// A genuine marketplace average (avgRating > 0) always wins; the pulse-score
// derivation is a fallback, never an override. Averages above the five-star
// ceiling are a data error upstream and are clamped.
func StarRating(avgRating float64, pulseScore int) float64 {
	if avgRating > 0 {
		if avgRating > 5 {
			avgRating = 5
		}
		return round1(avgRating)
	}
	return round1(float64(ClampScore(pulseScore)) / 100 * 5)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// StarSlots splits a rating into full/half/empty star counts.
// The three always sum to exactly 5.
func StarSlots(rating float64) (full, half, empty int) {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full = int(rating)
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	empty = 5 - full - half
	return full, half, empty
}

// RenderStars renders a rating as a fixed five-slot string, e.g. "★★★★☆"
// for 4.2 and "★★★½☆" for 3.7.
func RenderStars(rating float64) string {
	full, half, empty := StarSlots(rating)
	var b strings.Builder
	b.Grow(5)
	for i := 0; i < full; i++ {
		b.WriteRune('★')
	}
	if half == 1 {
		b.WriteRune('½')
	}
	for i := 0; i < empty; i++ {
		b.WriteRune('☆')
	}
	return b.String()
}

// TrustLabel maps a pulse score to the five-tier label shown on seller cards.
func TrustLabel(score int) string {
	score = ClampScore(score)
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Great"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Fair"
	default:
		return "Poor"
	}
}

// BadgeColor maps a pulse score to the coarser three-tier severity color used
// by banners and headers. This scale is intentionally different from the
// trust label and indicator bar scales.
func BadgeColor(score int) string {
	score = ClampScore(score)
	switch {
	case score >= 80:
		return "green"
	case score >= 60:
		return "yellow"
	default:
		return "red"
	}
}

// BarColor maps an indicator percentage to the four-tier bar color scale.
func BarColor(percent float64) string {
	switch {
	case percent >= 80:
		return "green"
	case percent >= 60:
		return "yellow"
	case percent >= 40:
		return "orange"
	default:
		return "red"
	}
}

// ParsePercent reads an indicator value that may arrive as a number or as a
// numeric string with a trailing "%". A failed parse yields 0; the result is
// clamped to [0,100] so it is always a usable bar width.
func ParsePercent(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}

// ParseNumber reads a score-like value that may arrive as a plain number
// string, with grouping commas, or with a trailing "%". A failed parse
// yields 0.
func ParseNumber(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// AccountAge buckets an account age in days into the human string shown in
// the statistics row.
func AccountAge(days int) string {
	switch {
	case days <= 0:
		return "New account"
	case days < 30:
		return fmt.Sprintf("%d days", days)
	case days < 365:
		return fmt.Sprintf("%d months", days/30)
	default:
		return fmt.Sprintf("%d years", days/365)
	}
}

// timestampLayouts are tried in order when parsing backend timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	// Epoch seconds show up in some scoring payloads.
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), true
	}
	return time.Time{}, false
}

// RelativeTime formats a lifecycle timestamp relative to now. Absent or
// unparseable input yields NoDateAvailable; a timestamp in the future falls
// back to the absolute date rather than a negative relative phrase.
func RelativeTime(raw string, now time.Time) string {
	t, ok := parseTimestamp(raw)
	if !ok {
		return NoDateAvailable
	}

	diff := now.Sub(t)
	if diff < 0 {
		return t.Format("Jan 2, 2006")
	}

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	case diff < 28*24*time.Hour:
		return pluralize(int(diff.Hours()/24/7), "week")
	case diff < 365*24*time.Hour:
		return pluralize(int(diff.Hours()/24/30), "month")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func pluralize(n int, unit string) string {
	if n <= 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
