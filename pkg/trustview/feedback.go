package trustview

import (
	"github.com/tidwall/gjson"
)

// NormalizeFeedback builds a FeedbackSummary from a raw seller feedback
// payload. Counts fall back to the lengths of the detail lists when the
// backend omits the totals.
func NormalizeFeedback(raw string) *FeedbackSummary {
	s := &FeedbackSummary{}
	if !gjson.Valid(raw) {
		return s
	}

	s.Flags = normalizeFeedbackEntries(gjson.Get(raw, "flags"))
	s.Endorsements = normalizeFeedbackEntries(gjson.Get(raw, "endorsements"))

	s.TotalFlags = intOf(gjson.Get(raw, "totalFlags"))
	if s.TotalFlags == 0 {
		s.TotalFlags = len(s.Flags)
	}
	s.TotalEndorsements = intOf(gjson.Get(raw, "totalEndorsements"))
	if s.TotalEndorsements == 0 {
		s.TotalEndorsements = len(s.Endorsements)
	}

	if net := gjson.Get(raw, "netFeedbackScore"); net.Exists() {
		s.NetFeedbackScore = intOf(net)
	} else {
		s.NetFeedbackScore = s.TotalEndorsements - s.TotalFlags
	}
	return s
}

func normalizeFeedbackEntries(r gjson.Result) []FeedbackEntry {
	if !r.IsArray() {
		return nil
	}
	var out []FeedbackEntry
	r.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			if reason := CleanText(item.Str); reason != "" {
				out = append(out, FeedbackEntry{Reason: reason})
			}
			return true
		}
		entry := FeedbackEntry{
			Reason:    CleanText(pickFrom(item, "reason", "category").String()),
			Comment:   CleanText(pickFrom(item, "comment", "message").String()),
			CreatedAt: pickFrom(item, "createdAt", "date").String(),
		}
		if entry.Reason == "" && entry.Comment == "" {
			return true
		}
		out = append(out, entry)
		return true
	})
	return out
}

// NormalizeAnalytics builds an AnalyticsSummary from a raw seller analytics
// payload.
func NormalizeAnalytics(raw string) *AnalyticsSummary {
	a := &AnalyticsSummary{
		ConfidenceLevel: ConfidenceLow,
		Verification:    VerificationUnverified,
	}
	if !gjson.Valid(raw) {
		a.TrustLevel = TrustLabel(0)
		return a
	}

	a.PulseScore = ClampScore(intOf(pick(raw, "seller.pulseScore", "pulseScore")))
	a.ConfidenceLevel = normalizeConfidence(pick(raw, "seller.confidenceLevel", "confidenceLevel").String())
	a.Verification = NormalizeVerification(pick(raw, "seller.verificationStatus", "verificationStatus").String())
	a.LastScored = pick(raw, "seller.lastScored", "lastScored").String()

	// The backend sends its own trust level label; recompute only when absent
	// so the dashboard and the backend never disagree.
	a.TrustLevel = CleanText(gjson.Get(raw, "trustLevel").String())
	if a.TrustLevel == "" {
		a.TrustLevel = TrustLabel(a.PulseScore)
	}

	a.TotalFlags = intOf(pick(raw, "feedback.totalFlags", "totalFlags"))
	a.TotalEndorsements = intOf(pick(raw, "feedback.totalEndorsements", "totalEndorsements"))
	a.TotalListings = intOf(pick(raw, "listings.total", "totalListings"))
	a.ActiveListings = intOf(pick(raw, "listings.active", "activeListings"))
	return a
}
