package trustview

import (
	"reflect"
	"testing"
)

const flatScorePayload = `{
  "profileData": {
    "name": "Jane Doe",
    "location": "Lagos",
    "totalReviews": 12,
    "totalListings": "34",
    "accountAgeDays": 400,
    "responseRate": "92%",
    "avgRating": 0
  },
  "scoringResult": {
    "pulseScore": 72,
    "confidenceLevel": "medium",
    "trustIndicators": {
      "profile_quality": "92%",
      "account_age": 55,
      "listing_quality": "n/a"
    }
  },
  "marketplaceData": {
    "verificationStatus": "unverified",
    "platform": "ebay"
  }
}`

const canonicalPayload = `{
  "seller": {
    "profileData": {
      "name": "Jane Doe",
      "location": "Lagos",
      "totalReviews": 12,
      "totalListings": "34",
      "accountAgeDays": 400,
      "responseRate": "92%",
      "avgRating": 0
    },
    "pulseScore": 72,
    "confidenceLevel": "medium",
    "verificationStatus": "unverified",
    "platform": "ebay",
    "trustIndicators": {
      "profile_quality": "92%",
      "account_age": 55,
      "listing_quality": "n/a"
    }
  }
}`

func TestNormalizeFlatScoreShape(t *testing.T) {
	v := Normalize(flatScorePayload, Context{})

	if v.TrustScore != 72 {
		t.Fatalf("expected trust score 72, got %d", v.TrustScore)
	}
	if v.Platform != "ebay" {
		t.Fatalf("expected platform ebay, got %q", v.Platform)
	}
	if v.MarketplaceVerification != VerificationUnverified {
		t.Fatalf("expected unverified, got %q", v.MarketplaceVerification)
	}
	if v.ConfidenceLevel != ConfidenceMedium {
		t.Fatalf("expected medium confidence, got %q", v.ConfidenceLevel)
	}
	if v.TrustLabel != "Good" || v.BadgeColor != "yellow" {
		t.Fatalf("expected Good/yellow, got %q/%q", v.TrustLabel, v.BadgeColor)
	}
	if v.StarRating != 3.6 {
		t.Fatalf("expected derived star rating 3.6, got %v", v.StarRating)
	}
	if v.SellerIdentity.Name != "Jane Doe" || v.SellerIdentity.Location != "Lagos" {
		t.Fatalf("unexpected identity: %+v", v.SellerIdentity)
	}
	if v.Statistics.TotalReviews != 12 || v.Statistics.TotalListings != 34 ||
		v.Statistics.AccountAgeDays != 400 || v.Statistics.ResponseRatePercent != 92 {
		t.Fatalf("unexpected statistics: %+v", v.Statistics)
	}
}

func TestNormalizeIsIdempotentAcrossShapes(t *testing.T) {
	flat := Normalize(flatScorePayload, Context{})
	canonical := Normalize(canonicalPayload, Context{})
	if !reflect.DeepEqual(flat, canonical) {
		t.Fatalf("flat and canonical shapes normalized differently:\nflat:      %+v\ncanonical: %+v", flat, canonical)
	}

	again := Normalize(canonicalPayload, Context{})
	if !reflect.DeepEqual(canonical, again) {
		t.Fatalf("second pass over canonical payload changed the view")
	}
}

func TestNormalizeIndicatorBars(t *testing.T) {
	v := Normalize(flatScorePayload, Context{})

	want := []IndicatorBar{
		{Label: "Profile Quality", Percent: 92, Color: "green"},
		{Label: "Account Age", Percent: 55, Color: "orange"},
		{Label: "Listing Quality", Percent: 0, Color: "red"},
	}
	if !reflect.DeepEqual(v.TrustIndicatorBars, want) {
		t.Fatalf("unexpected indicator bars: %+v", v.TrustIndicatorBars)
	}
}

func TestNormalizeMultiMatch(t *testing.T) {
	payload := `{"sellers": [
		{"name": "First Match", "pulseScore": 88, "platform": "jiji", "verificationStatus": "verified"},
		{"name": "Second Match", "pulseScore": 40, "platform": "jiji"},
		{"name": "Third Match", "pulseScore": 10, "platform": "olx"}
	]}`

	v := Normalize(payload, Context{})
	if v.AdditionalMatches != 2 {
		t.Fatalf("expected 2 additional matches, got %d", v.AdditionalMatches)
	}
	if v.SellerIdentity.Name != "First Match" {
		t.Fatalf("expected first match to win, got %q", v.SellerIdentity.Name)
	}
	if v.TrustScore != 88 || v.TrustLabel != "Great" {
		t.Fatalf("expected 88/Great, got %d/%q", v.TrustScore, v.TrustLabel)
	}
	if v.MarketplaceVerification != VerificationVerified {
		t.Fatalf("expected verified, got %q", v.MarketplaceVerification)
	}
}

func TestNormalizeEmptySellersArray(t *testing.T) {
	v := Normalize(`{"sellers": []}`, Context{})
	if v.TrustScore != 0 || v.AdditionalMatches != 0 {
		t.Fatalf("expected zero view, got %+v", v)
	}
}

func TestNormalizeZeroSignalSeller(t *testing.T) {
	for _, payload := range []string{"{}", "", "not json at all", `{"seller": {}}`} {
		v := Normalize(payload, Context{})
		if v.TrustScore != 0 {
			t.Errorf("%q: expected score 0, got %d", payload, v.TrustScore)
		}
		if v.StarRating != 0 {
			t.Errorf("%q: expected 0.0 stars, got %v", payload, v.StarRating)
		}
		if v.TrustLabel != "Poor" || v.BadgeColor != "red" {
			t.Errorf("%q: expected Poor/red, got %q/%q", payload, v.TrustLabel, v.BadgeColor)
		}
		if got := v.DisplayName(SurfaceCard); got != "Unknown Seller" {
			t.Errorf("%q: expected Unknown Seller, got %q", payload, got)
		}
		if v.ConfidenceLevel != ConfidenceLow || v.MarketplaceVerification != VerificationUnverified {
			t.Errorf("%q: unexpected defaults: %q/%q", payload, v.ConfidenceLevel, v.MarketplaceVerification)
		}
	}
}

func TestNormalizeClampsScore(t *testing.T) {
	v := Normalize(`{"scoringResult": {"pulseScore": 150}}`, Context{})
	if v.TrustScore != 100 || v.TrustLabel != "Excellent" {
		t.Fatalf("expected 100/Excellent, got %d/%q", v.TrustScore, v.TrustLabel)
	}

	v = Normalize(`{"scoringResult": {"pulseScore": -5}}`, Context{})
	if v.TrustScore != 0 || v.TrustLabel != "Poor" {
		t.Fatalf("expected 0/Poor, got %d/%q", v.TrustScore, v.TrustLabel)
	}
}

func TestNormalizeAvgRatingWinsOverDerivation(t *testing.T) {
	payload := `{"seller": {"pulseScore": 84, "profileData": {"avgRating": 3.7}}}`
	v := Normalize(payload, Context{})
	if v.StarRating != 3.7 {
		t.Fatalf("expected marketplace average 3.7 to win, got %v", v.StarRating)
	}

	payload = `{"seller": {"pulseScore": 84, "profileData": {"avgRating": 0}}}`
	v = Normalize(payload, Context{})
	if v.StarRating != 4.2 {
		t.Fatalf("expected derived 4.2 stars, got %v", v.StarRating)
	}

	payload = `{"seller": {"pulseScore": 40, "profileData": {"avgRating": 7.2}}}`
	v = Normalize(payload, Context{})
	if v.StarRating != 5 {
		t.Fatalf("expected out-of-range average clamped to 5, got %v", v.StarRating)
	}
}

func TestNormalizeVerificationStaysSeparate(t *testing.T) {
	payload := `{"seller": {"platformVerified": true, "verificationStatus": "unverified"}}`
	v := Normalize(payload, Context{})
	if !v.PlatformVerified {
		t.Fatal("expected platformVerified true")
	}
	if v.MarketplaceVerification != VerificationUnverified {
		t.Fatalf("marketplace verification leaked: %q", v.MarketplaceVerification)
	}
}

func TestNormalizeVerificationStrings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"verified", VerificationVerified},
		{"TRUE", VerificationVerified},
		{"fully_verified", VerificationVerified},
		{"id_verified", VerificationID},
		{"partially_verified", VerificationID},
		{"unverified", VerificationUnverified},
		{"not_verified", VerificationUnverified},
		{"something-new", VerificationUnverified},
		{"", VerificationUnverified},
	}
	for _, tc := range tests {
		if got := NormalizeVerification(tc.in); got != tc.want {
			t.Errorf("NormalizeVerification(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRecommendations(t *testing.T) {
	payload := `{"scoringResult": {"recommendations": [
		"Ships quickly",
		{"type": "warning", "message": "Low response rate", "priority": "HIGH"},
		{"type": "info", "text": "Stable listing history"},
		{"type": "warning", "message": "   "}
	]}}`

	v := Normalize(payload, Context{})
	want := []Recommendation{
		{Kind: RecommendationPositive, Message: "Ships quickly"},
		{Kind: RecommendationWarning, Message: "Low response rate", Priority: "high"},
		{Kind: RecommendationPositive, Message: "Stable listing history"},
	}
	if !reflect.DeepEqual(v.Recommendations, want) {
		t.Fatalf("unexpected recommendations: %+v", v.Recommendations)
	}
}

func TestNormalizeListingsRequireTitle(t *testing.T) {
	payload := `{"seller": {"recentListings": [
		{"title": "Used laptop", "price": "GHS 1,200"},
		{"price": "GHS 50"},
		{"name": "Phone case", "image": "https://cdn.example.com/x.jpg"}
	]}}`

	v := Normalize(payload, Context{})
	if len(v.RecentListings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(v.RecentListings))
	}
	if v.RecentListings[0].Title != "Used laptop" || v.RecentListings[0].Price != "GHS 1,200" {
		t.Fatalf("unexpected first listing: %+v", v.RecentListings[0])
	}
	if v.RecentListings[1].Title != "Phone case" || v.RecentListings[1].ImageURL != "https://cdn.example.com/x.jpg" {
		t.Fatalf("unexpected second listing: %+v", v.RecentListings[1])
	}
}

func TestLabelizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"profile_quality", "Profile Quality"},
		{"profileQuality", "Profile Quality"},
		{"account-age", "Account Age"},
		{"verification", "Verification"},
	}
	for _, tc := range tests {
		if got := labelizeKey(tc.in); got != tc.want {
			t.Errorf("labelizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
