package trustview

import (
	"fmt"
	"strings"
	"time"
)

// ansi color codes for the badge/bar colors used by terminal output.
var ansiColors = map[string]string{
	"green":  "\033[32m",
	"yellow": "\033[33m",
	"orange": "\033[38;5;208m",
	"red":    "\033[31m",
}

const ansiReset = "\033[0m"

func colorize(color, text string, enabled bool) string {
	if !enabled {
		return text
	}
	code, ok := ansiColors[color]
	if !ok {
		return text
	}
	return code + text + ansiReset
}

// CardLines renders the seller card as terminal lines. It is the single
// place the CLI formats a view, so every command prints sellers the same way.
func CardLines(v *SellerTrustView, now time.Time, color bool) []string {
	var lines []string

	verified := ""
	if v.PlatformVerified {
		verified = " [verified on Verible]"
	}
	lines = append(lines, fmt.Sprintf("%s (%s)%s", v.DisplayName(SurfaceCard), v.Platform, verified))

	scoreLine := fmt.Sprintf("Pulse Score: %d/100 — %s", v.TrustScore, v.TrustLabel)
	lines = append(lines, colorize(v.BadgeColor, scoreLine, color))
	lines = append(lines, fmt.Sprintf("Rating: %s (%.1f)  Confidence: %s  Marketplace: %s",
		RenderStars(v.StarRating), v.StarRating, v.ConfidenceLevel, v.MarketplaceVerification))

	if v.SellerIdentity.Location != "" {
		lines = append(lines, "Location: "+v.SellerIdentity.Location)
	}

	lines = append(lines, fmt.Sprintf("Reviews: %d  Listings: %d  Followers: %d  Account age: %s  Response rate: %d%%",
		v.Statistics.TotalReviews, v.Statistics.TotalListings, v.Statistics.Followers,
		AccountAge(v.Statistics.AccountAgeDays), v.Statistics.ResponseRatePercent))

	if len(v.TrustIndicatorBars) > 0 {
		lines = append(lines, "Trust indicators:")
		for _, bar := range v.TrustIndicatorBars {
			lines = append(lines, "  "+renderBar(bar, color))
		}
	}

	for _, rec := range v.Recommendations {
		prefix := "  + "
		if rec.Kind == RecommendationWarning {
			prefix = "  ! "
		}
		lines = append(lines, prefix+rec.Message)
	}
	for _, rf := range v.RiskFactors {
		lines = append(lines, "  ! "+rf.Text)
	}

	if v.FlagCount > 0 || v.EndorsementCount > 0 {
		lines = append(lines, fmt.Sprintf("Community: %d endorsements, %d flags", v.EndorsementCount, v.FlagCount))
	}

	lines = append(lines, "Last scored: "+RelativeTime(v.LifecycleTimestamps.LastScored, now))

	if v.AdditionalMatches > 0 {
		lines = append(lines, fmt.Sprintf("(%d more sellers matched this search)", v.AdditionalMatches))
	}
	return lines
}

// renderBar draws a 20-slot indicator bar, e.g. "Profile Quality [########------------] 40%".
func renderBar(bar IndicatorBar, color bool) string {
	const width = 20
	filled := int(bar.Percent / 100 * width)
	if filled > width {
		filled = width
	}
	gauge := strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("%-20s [%s] %.0f%%", bar.Label, colorize(bar.Color, gauge, color), bar.Percent)
}

// PrintCard writes the card to stdout.
func PrintCard(v *SellerTrustView, now time.Time, color bool) {
	for _, line := range CardLines(v, now, color) {
		fmt.Println(line)
	}
}
