package history

import "time"

// Snapshot is one captured scoring of a seller profile.
type Snapshot struct {
	ProfileURL string
	Platform   string
	Name       string

	PulseScore              int
	ConfidenceLevel         string
	TrustLabel              string
	StarRating              float64
	MarketplaceVerification string

	CapturedAt time.Time
}

// Change types recorded when a new snapshot lands.
const (
	ChangeFirstSeen = "first-seen"
	ChangeImproved  = "improved"
	ChangeDeclined  = "declined"
)

// Change captures a score movement event for auditing or printing.
type Change struct {
	OccurredAt time.Time

	ProfileURL string
	Platform   string
	Name       string

	OldScore   int
	NewScore   int
	ChangeType string // first-seen | improved | declined
}

// ListOptions controls selection when listing the latest snapshots.
type ListOptions struct {
	Platform     string
	SearchFilter string
	Since        time.Time
}

// PlatformStats summarizes tracked sellers per platform.
type PlatformStats struct {
	Platform    string
	SellerCount int
	AvgScore    float64
}
