// Package domainkey normalizes website strings to registrable-domain keys.
//
// A canonical key is the effective second-level label plus public suffix
// (e.g. "example.co.uk"), resolved against the embedded public-suffix list.
// Multi-label suffixes are handled correctly; a "last two labels" heuristic
// would mis-key co.uk/com.au domains and is deliberately not used.
package domainkey

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Canonicalize reduces a free-form website string (URL, bare domain, with or
// without scheme/subdomain/path/query) to its registrable domain, lowercased.
// Unparseable input degrades to the lowercased trimmed string rather than an
// error; callers tolerate degenerate keys instead of aborting a run.
func Canonicalize(raw string) string {
	host := hostOf(raw)
	if host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}

	etld, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return etld
}

// SLD returns the second-level label of a website string ("covertcamera" for
// "www.covertcamera.co.uk"). Empty when no registrable domain can be derived.
func SLD(raw string) string {
	key := Canonicalize(raw)
	if i := strings.IndexByte(key, '.'); i > 0 {
		return key[:i]
	}
	return key
}

// hostOf extracts a lowercased hostname from raw, tolerating missing schemes
// and stray paths. Returns "" when no plausible hostname is present.
func hostOf(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = strings.Trim(host, ".")
	if host == "" || !strings.Contains(host, ".") {
		return ""
	}
	return host
}
