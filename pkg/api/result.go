package api

import "github.com/tidwall/gjson"

// ResponseKind tags which of the backend's seller payload shapes a response
// body matched. The backend returns the same logical data in several shapes;
// resolving the shape once here keeps that knowledge out of every consumer.
type ResponseKind int

const (
	// KindUnknown means the body matched none of the documented shapes.
	KindUnknown ResponseKind = iota
	// KindCanonical is the {seller, extractedData?, scoringResult?} envelope.
	KindCanonical
	// KindFlatScore is the flat score-by-url shape with top-level
	// profileData/scoringResult/marketplaceData objects.
	KindFlatScore
	// KindMultiMatch is the paginated {sellers: [...], pagination} shape
	// returned by location searches.
	KindMultiMatch
)

func (k ResponseKind) String() string {
	switch k {
	case KindCanonical:
		return "canonical"
	case KindFlatScore:
		return "flat-score"
	case KindMultiMatch:
		return "multi-match"
	default:
		return "unknown"
	}
}

// Result is a raw seller payload tagged with its detected shape.
type Result struct {
	Kind ResponseKind
	Body string
}

// DetectKind classifies a raw response body.
func DetectKind(body string) ResponseKind {
	if !gjson.Valid(body) {
		return KindUnknown
	}
	if gjson.Get(body, "sellers").IsArray() {
		return KindMultiMatch
	}
	if gjson.Get(body, "seller").Exists() {
		return KindCanonical
	}
	if gjson.Get(body, "scoringResult").Exists() ||
		gjson.Get(body, "profileData").Exists() ||
		gjson.Get(body, "marketplaceData").Exists() {
		return KindFlatScore
	}
	return KindUnknown
}
