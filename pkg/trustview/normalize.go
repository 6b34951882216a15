package trustview

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/verible/verible-cli/internal/utils"
	"github.com/verible/verible-cli/pkg/platforms"
)

// Context describes the caller's session when a view is built. It influences
// which sections downstream surfaces render, never the normalization itself.
type Context struct {
	LoggedIn bool
}

// Normalize builds a SellerTrustView from a raw backend payload. The payload
// may be any of the shapes the backend returns for seller data: the canonical
// {seller, extractedData, scoringResult} envelope, the flat score-by-url
// shape, a single search match, or a paginated {sellers: [...]} result (the
// first element is used and AdditionalMatches records the rest).
//
// Every field access is defensive: a missing or malformed field becomes a
// sensible default, never a panic. Normalizing an already-canonical payload
// is a pass-through, so the reconciliation is idempotent.
func Normalize(raw string, ctx Context) *SellerTrustView {
	body := strings.TrimSpace(raw)

	v := &SellerTrustView{
		Platform:                platforms.Unknown,
		ConfidenceLevel:         ConfidenceLow,
		MarketplaceVerification: VerificationUnverified,
	}

	if body == "" || !gjson.Valid(body) {
		utils.Log.Debug("trustview: payload is empty or not valid JSON, returning zero view")
		v.finish(0, 0)
		return v
	}

	// Location searches return an array of sellers; only the first match is
	// represented by the view.
	if sellers := gjson.Get(body, "sellers"); sellers.IsArray() {
		matches := sellers.Array()
		if len(matches) == 0 {
			v.finish(0, 0)
			return v
		}
		v.AdditionalMatches = len(matches) - 1
		body = `{"seller":` + matches[0].Raw + `}`
	}

	// Shape reconciliation: canonical paths first, then the flat score-by-url
	// equivalents. Reading through fallback chains instead of rewriting the
	// document keeps a second pass over canonical input a no-op.
	v.SellerIdentity = SellerIdentity{
		Name: CleanText(pick(body,
			"seller.profileData.name",
			"seller.name",
			"profileData.name",
			"extractedData.profileData.name").String()),
		ProfilePictureURL: strings.TrimSpace(pick(body,
			"seller.profileData.profilePicture",
			"seller.profilePictureUrl",
			"profileData.profilePicture",
			"extractedData.profileData.profilePicture").String()),
		Location: CleanText(pick(body,
			"seller.profileData.location",
			"seller.location",
			"profileData.location",
			"extractedData.profileData.location").String()),
		Bio: CleanText(pick(body,
			"seller.profileData.bio",
			"seller.bio",
			"profileData.bio",
			"profileData.description",
			"extractedData.profileData.bio").String()),
	}

	v.Platform = platforms.Normalize(pick(body,
		"seller.platform",
		"extractedData.platform",
		"marketplaceData.platform").String())

	score := pick(body, "seller.pulseScore", "scoringResult.pulseScore")
	confidence := pick(body, "seller.confidenceLevel", "scoringResult.confidenceLevel").String()

	v.ConfidenceLevel = normalizeConfidence(confidence)
	v.MarketplaceVerification = NormalizeVerification(pick(body,
		"seller.verificationStatus",
		"extractedData.marketplaceData.verificationStatus",
		"marketplaceData.verificationStatus").String())
	v.PlatformVerified = pick(body,
		"seller.platformVerified",
		"seller.verified").Bool()

	v.Statistics = Statistics{
		TotalReviews: intOf(pick(body,
			"seller.profileData.totalReviews",
			"seller.totalReviews",
			"profileData.totalReviews",
			"profileData.reviewsCount")),
		TotalListings: intOf(pick(body,
			"seller.profileData.totalListings",
			"seller.totalListings",
			"profileData.totalListings",
			"profileData.listingsCount")),
		Followers: intOf(pick(body,
			"seller.profileData.followers",
			"profileData.followers")),
		AccountAgeDays: intOf(pick(body,
			"seller.profileData.accountAgeDays",
			"seller.accountAgeDays",
			"profileData.accountAgeDays")),
		ResponseRatePercent: int(ParsePercent(pick(body,
			"seller.profileData.responseRate",
			"profileData.responseRate").String())),
	}

	v.TrustIndicatorBars = normalizeIndicators(pick(body,
		"seller.trustIndicators",
		"scoringResult.trustIndicators",
		"extractedData.trustIndicators"))
	v.Recommendations = normalizeRecommendations(pick(body,
		"seller.recommendations",
		"scoringResult.recommendations"))
	v.RiskFactors = normalizeRiskFactors(pick(body,
		"seller.riskFactors",
		"scoringResult.riskFactors"))
	v.RecentListings = normalizeListings(pick(body,
		"seller.recentListings",
		"extractedData.recentListings"))

	v.FlagCount = intOf(pick(body,
		"seller.totalFlags",
		"seller.flagCount",
		"feedback.totalFlags"))
	v.EndorsementCount = intOf(pick(body,
		"seller.totalEndorsements",
		"seller.endorsementCount",
		"feedback.totalEndorsements"))

	v.LifecycleTimestamps = LifecycleTimestamps{
		FirstSeen:  pick(body, "seller.firstSeen", "firstSeen").String(),
		LastSeen:   pick(body, "seller.lastSeen", "lastSeen").String(),
		CreatedAt:  pick(body, "seller.createdAt", "createdAt").String(),
		UpdatedAt:  pick(body, "seller.updatedAt", "updatedAt").String(),
		LastScored: pick(body, "seller.lastScored", "scoringResult.scoredAt", "lastScored").String(),
	}

	avgRating := pick(body,
		"seller.profileData.avgRating",
		"seller.avgRating",
		"profileData.avgRating",
		"profileData.rating").Float()

	v.finish(intOf(score), avgRating)
	return v
}

// finish fills in every presentation field derived from the pulse score.
func (v *SellerTrustView) finish(score int, avgRating float64) {
	v.TrustScore = ClampScore(score)
	v.StarRating = StarRating(avgRating, v.TrustScore)
	v.TrustLabel = TrustLabel(v.TrustScore)
	v.BadgeColor = BadgeColor(v.TrustScore)
}

// pick returns the first existing result among the given gjson paths.
func pick(body string, paths ...string) gjson.Result {
	for _, p := range paths {
		if r := gjson.Get(body, p); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// intOf reads a numeric value that may arrive as a number or a numeric
// string. Anything unparseable becomes 0.
func intOf(r gjson.Result) int {
	switch r.Type {
	case gjson.Number:
		return int(r.Int())
	case gjson.String:
		return int(ParseNumber(r.Str))
	case gjson.True:
		return 1
	default:
		return 0
	}
}

func normalizeConfidence(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium, "med", "moderate":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// verificationUnificationMap groups the raw, platform-specific verification
// strings under the three canonical statuses.
var verificationUnificationMap = map[string][]string{
	VerificationVerified:   {"verified", "fully_verified", "full", "true", "yes"},
	VerificationID:         {"id-verified", "id_verified", "idverified", "id verified", "partially_verified", "partial"},
	VerificationUnverified: {"unverified", "not_verified", "not verified", "false", "no", "none"},
}

// verificationMap is a reverse map generated from verificationUnificationMap
// for efficient lookups.
var verificationMap map[string]string

func init() {
	verificationMap = make(map[string]string)
	for canonical, raws := range verificationUnificationMap {
		for _, raw := range raws {
			verificationMap[raw] = canonical
		}
	}
}

// NormalizeVerification maps a raw marketplace verification string to one of
// the canonical statuses. Unknown values default to unverified.
func NormalizeVerification(raw string) string {
	if canonical, ok := verificationMap[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return VerificationUnverified
}

// normalizeIndicators accepts an arbitrary mapping of indicator name to a
// value that may be a number or a "92%" style string. Bar order follows the
// key order of the input object.
func normalizeIndicators(r gjson.Result) []IndicatorBar {
	if !r.IsObject() {
		return nil
	}
	var bars []IndicatorBar
	r.ForEach(func(key, value gjson.Result) bool {
		percent := ParsePercent(value.String())
		bars = append(bars, IndicatorBar{
			Label:   labelizeKey(key.String()),
			Percent: percent,
			Color:   BarColor(percent),
		})
		return true
	})
	return bars
}

// labelizeKey turns an indicator key like "account_age" or "profileQuality"
// into a display label.
func labelizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return key
	}
	var b strings.Builder
	for i, r := range key {
		if r == '_' || r == '-' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	words := strings.Fields(strings.ToLower(b.String()))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func normalizeRecommendations(r gjson.Result) []Recommendation {
	if !r.IsArray() {
		return nil
	}
	var out []Recommendation
	r.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			if msg := CleanText(item.Str); msg != "" {
				out = append(out, Recommendation{Kind: RecommendationPositive, Message: msg})
			}
			return true
		}
		msg := CleanText(item.Get("message").String())
		if msg == "" {
			msg = CleanText(item.Get("text").String())
		}
		if msg == "" {
			return true
		}
		kind := RecommendationPositive
		switch strings.ToLower(item.Get("type").String()) {
		case "warning", "risk", "negative", "caution":
			kind = RecommendationWarning
		}
		out = append(out, Recommendation{
			Kind:     kind,
			Message:  msg,
			Action:   CleanText(item.Get("action").String()),
			Priority: strings.ToLower(item.Get("priority").String()),
		})
		return true
	})
	return out
}

func normalizeRiskFactors(r gjson.Result) []RiskFactor {
	if !r.IsArray() {
		return nil
	}
	var out []RiskFactor
	r.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			if text := CleanText(item.Str); text != "" {
				out = append(out, RiskFactor{Text: text})
			}
			return true
		}
		text := CleanText(item.Get("text").String())
		if text == "" {
			text = CleanText(item.Get("description").String())
		}
		if text == "" {
			return true
		}
		out = append(out, RiskFactor{
			Text:     text,
			Category: strings.ToLower(item.Get("category").String()),
			Severity: strings.ToLower(item.Get("severity").String()),
		})
		return true
	})
	return out
}

func normalizeListings(r gjson.Result) []Listing {
	if !r.IsArray() {
		return nil
	}
	var out []Listing
	r.ForEach(func(_, item gjson.Result) bool {
		title := CleanText(pickFrom(item, "title", "name").String())
		if title == "" {
			return true
		}
		out = append(out, Listing{
			Title:    title,
			Price:    strings.TrimSpace(pickFrom(item, "price", "amount").String()),
			ImageURL: strings.TrimSpace(pickFrom(item, "imageUrl", "image").String()),
			Date:     strings.TrimSpace(pickFrom(item, "date", "postedAt").String()),
		})
		return true
	})
	return out
}

func pickFrom(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if res := r.Get(k); res.Exists() {
			return res
		}
	}
	return gjson.Result{}
}
