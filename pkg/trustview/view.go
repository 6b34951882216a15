// Package trustview turns the heterogeneous seller/scoring payloads returned
// by the Verible backend into a single render-ready SellerTrustView.
// Everything in here is a pure transformation: no I/O, no side effects, and no
// panics regardless of how malformed the input payload is.
package trustview

// Confidence levels reported by the scoring backend.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Marketplace verification statuses (verification on the origin marketplace).
const (
	VerificationUnverified = "unverified"
	VerificationID         = "id-verified"
	VerificationVerified   = "verified"
)

// SellerIdentity holds the cleaned, display-safe identity fields.
// Name is "" when the source value wasn't meaningful text; use DisplayName
// to render it with the right fallback for the surface.
type SellerIdentity struct {
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Location          string `json:"location,omitempty"`
	Bio               string `json:"bio,omitempty"`
}

// Statistics are the numeric profile counters shown on the seller card.
type Statistics struct {
	TotalReviews        int `json:"totalReviews"`
	TotalListings       int `json:"totalListings"`
	Followers           int `json:"followers"`
	AccountAgeDays      int `json:"accountAgeDays"`
	ResponseRatePercent int `json:"responseRatePercent"`
}

// IndicatorBar is one row of the trust indicator breakdown. Percent is
// clamped to [0,100]; Color uses the four-tier bar scale, which is a
// different scale from the trust label and badge thresholds.
type IndicatorBar struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// Recommendation kinds.
const (
	RecommendationPositive = "positive"
	RecommendationWarning  = "warning"
)

type Recommendation struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Action   string `json:"action,omitempty"`
	Priority string `json:"priority,omitempty"`
}

type RiskFactor struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	Severity string `json:"severity,omitempty"`
}

type Listing struct {
	Title    string `json:"title"`
	Price    string `json:"price,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Date     string `json:"date,omitempty"`
}

// LifecycleTimestamps are raw timestamp strings as supplied by the backend.
// Each is independently nullable ("" = absent) and formatted on demand with
// RelativeTime, which never produces "Invalid Date".
type LifecycleTimestamps struct {
	FirstSeen  string `json:"firstSeen,omitempty"`
	LastSeen   string `json:"lastSeen,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
	LastScored string `json:"lastScored,omitempty"`
}

// SellerTrustView is the single normalized read model consumed by every
// rendering surface. It is constructed fresh for each response and never
// mutated afterwards.
type SellerTrustView struct {
	SellerIdentity SellerIdentity `json:"sellerIdentity"`
	Platform       string         `json:"platform"`

	TrustScore      int    `json:"trustScore"`
	ConfidenceLevel string `json:"confidenceLevel"`

	// Verification on the origin marketplace and on Verible itself are
	// tracked separately and must never be merged into one status.
	MarketplaceVerification string `json:"marketplaceVerification"`
	PlatformVerified        bool   `json:"platformVerified"`

	StarRating float64 `json:"starRating"`
	TrustLabel string  `json:"trustLabel"`
	BadgeColor string  `json:"badgeColor"`

	Statistics         Statistics       `json:"statistics"`
	TrustIndicatorBars []IndicatorBar   `json:"trustIndicatorBars,omitempty"`
	Recommendations    []Recommendation `json:"recommendations,omitempty"`
	RiskFactors        []RiskFactor     `json:"riskFactors,omitempty"`
	RecentListings     []Listing        `json:"recentListings,omitempty"`

	FlagCount        int `json:"flagCount"`
	EndorsementCount int `json:"endorsementCount"`

	LifecycleTimestamps LifecycleTimestamps `json:"lifecycleTimestamps"`

	// AdditionalMatches is set when a location search returned more than one
	// seller; only the first match is represented by this view.
	AdditionalMatches int `json:"additionalMatches,omitempty"`
}

// Render surfaces. Card and modal contexts use different fallback strings for
// a missing seller name.
type Surface int

const (
	SurfaceCard Surface = iota
	SurfaceModal
)

const (
	cardNameFallback  = "Unknown Seller"
	modalNameFallback = "Not available"
)

// DisplayName returns the seller name with the surface-appropriate fallback.
// It never returns an empty string.
func (v *SellerTrustView) DisplayName(s Surface) string {
	if v.SellerIdentity.Name != "" {
		return v.SellerIdentity.Name
	}
	if s == SurfaceModal {
		return modalNameFallback
	}
	return cardNameFallback
}

// FeedbackSummary is the normalized community feedback read model.
type FeedbackSummary struct {
	Flags             []FeedbackEntry `json:"flags,omitempty"`
	Endorsements      []FeedbackEntry `json:"endorsements,omitempty"`
	TotalFlags        int             `json:"totalFlags"`
	TotalEndorsements int             `json:"totalEndorsements"`
	NetFeedbackScore  int             `json:"netFeedbackScore"`
}

type FeedbackEntry struct {
	Reason    string `json:"reason,omitempty"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// AnalyticsSummary is the normalized seller analytics read model.
type AnalyticsSummary struct {
	PulseScore        int    `json:"pulseScore"`
	ConfidenceLevel   string `json:"confidenceLevel"`
	Verification      string `json:"verification"`
	LastScored        string `json:"lastScored,omitempty"`
	TrustLevel        string `json:"trustLevel"`
	TotalFlags        int    `json:"totalFlags"`
	TotalEndorsements int    `json:"totalEndorsements"`
	TotalListings     int    `json:"totalListings"`
	ActiveListings    int    `json:"activeListings"`
}
