package trustview

import "testing"

func TestNormalizeFeedbackTotalsFallBackToLists(t *testing.T) {
	payload := `{
		"flags": [
			{"reason": "Counterfeit goods", "comment": "Item was fake", "createdAt": "2026-01-10T09:00:00Z"},
			"slow shipping"
		],
		"endorsements": [
			{"reason": "Great communication"},
			{"reason": "Fast delivery"},
			{"reason": "As described"}
		]
	}`

	s := NormalizeFeedback(payload)
	if s.TotalFlags != 2 || s.TotalEndorsements != 3 {
		t.Fatalf("expected totals 2/3, got %d/%d", s.TotalFlags, s.TotalEndorsements)
	}
	if s.NetFeedbackScore != 1 {
		t.Fatalf("expected net score 1, got %d", s.NetFeedbackScore)
	}
	if s.Flags[0].Reason != "Counterfeit goods" || s.Flags[0].Comment != "Item was fake" {
		t.Fatalf("unexpected first flag: %+v", s.Flags[0])
	}
	if s.Flags[1].Reason != "slow shipping" {
		t.Fatalf("string entry should become a reason: %+v", s.Flags[1])
	}
}

func TestNormalizeFeedbackBackendTotalsWin(t *testing.T) {
	payload := `{"totalFlags": 7, "totalEndorsements": 20, "netFeedbackScore": 13}`
	s := NormalizeFeedback(payload)
	if s.TotalFlags != 7 || s.TotalEndorsements != 20 || s.NetFeedbackScore != 13 {
		t.Fatalf("backend totals ignored: %+v", s)
	}
}

func TestNormalizeFeedbackGarbage(t *testing.T) {
	s := NormalizeFeedback("not json")
	if s.TotalFlags != 0 || s.TotalEndorsements != 0 || len(s.Flags) != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}

func TestNormalizeAnalytics(t *testing.T) {
	payload := `{
		"seller": {"pulseScore": 91, "confidenceLevel": "high", "verificationStatus": "verified", "lastScored": "2026-02-01T00:00:00Z"},
		"feedback": {"totalFlags": 1, "totalEndorsements": 14},
		"listings": {"total": 40, "active": 22}
	}`

	a := NormalizeAnalytics(payload)
	if a.PulseScore != 91 || a.ConfidenceLevel != ConfidenceHigh || a.Verification != VerificationVerified {
		t.Fatalf("unexpected analytics: %+v", a)
	}
	if a.TrustLevel != "Excellent" {
		t.Fatalf("expected recomputed Excellent, got %q", a.TrustLevel)
	}
	if a.TotalFlags != 1 || a.TotalEndorsements != 14 || a.TotalListings != 40 || a.ActiveListings != 22 {
		t.Fatalf("unexpected counters: %+v", a)
	}
}

func TestNormalizeAnalyticsBackendLabelWins(t *testing.T) {
	a := NormalizeAnalytics(`{"pulseScore": 91, "trustLevel": "Outstanding"}`)
	if a.TrustLevel != "Outstanding" {
		t.Fatalf("backend label should win, got %q", a.TrustLevel)
	}
}
