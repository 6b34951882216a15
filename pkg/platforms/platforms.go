// Package platforms keeps the registry of marketplaces Verible knows how to
// score, and maps seller profile URLs back to a platform key.
package platforms

import (
	"net/url"
	"strings"

	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// Unknown is the platform key used when a URL doesn't match any known marketplace.
const Unknown = "unknown"

// domainMap is the source of truth for platform detection.
// It groups the registrable domains a marketplace is reachable under
// beneath a single lowercase platform key.
var domainMap = map[string][]string{
	"jiji":      {"jiji.ng", "jiji.co.ke", "jiji.ug", "jiji.com.gh", "jiji.co.tz"},
	"ebay":      {"ebay.com", "ebay.co.uk", "ebay.de", "ebay.com.au"},
	"etsy":      {"etsy.com"},
	"jumia":     {"jumia.com.ng", "jumia.co.ke", "jumia.com.gh"},
	"facebook":  {"facebook.com", "fb.com"},
	"instagram": {"instagram.com"},
	"konga":     {"konga.com"},
	"olx":       {"olx.com", "olx.ng", "olx.co.za"},
}

// platformByDomain is a reverse map generated from domainMap for efficient lookups.
var platformByDomain map[string]string

func init() {
	platformByDomain = make(map[string]string)
	for platform, domains := range domainMap {
		for _, d := range domains {
			platformByDomain[d] = platform
		}
	}
}

// Known reports whether key is a registered platform key.
func Known(key string) bool {
	_, ok := domainMap[strings.ToLower(key)]
	return ok
}

// Keys returns all registered platform keys.
func Keys() []string {
	out := make([]string, 0, len(domainMap))
	for k := range domainMap {
		out = append(out, k)
	}
	return out
}

// Normalize lowercases a platform key and collapses unknown/empty input
// to the Unknown sentinel.
func Normalize(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return Unknown
	}
	return key
}

// DetectFromURL maps a seller profile URL to a platform key.
// The host is reduced to its registrable domain first, so
// "https://www.jiji.ng/shop/abc" and "https://jiji.ng/abc" both detect "jiji".
// Returns (Unknown, false) when the URL doesn't match any known marketplace.
func DetectFromURL(profileURL string) (string, bool) {
	profileURL = strings.TrimSpace(profileURL)
	if profileURL == "" {
		return Unknown, false
	}

	// A pasted profile link sometimes lacks the scheme.
	if !strings.Contains(profileURL, "://") {
		profileURL = "https://" + profileURL
	}

	u, err := url.Parse(profileURL)
	if err != nil || u.Hostname() == "" {
		return Unknown, false
	}

	host := strings.ToLower(u.Hostname())
	domain, err := publicsuffix.Domain(host)
	if err != nil {
		// Not a registrable domain (IP, localhost, ...). Fall back to the raw host.
		domain = host
	}

	if platform, ok := platformByDomain[domain]; ok {
		return platform, true
	}
	return Unknown, false
}
