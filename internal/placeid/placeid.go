// Package placeid derives a filesystem-safe identifier from a Google Maps
// URL, used to name the per-place output file.
package placeid

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const maxIDLen = 50

var (
	placeIDPattern   = regexp.MustCompile(`place_id:([A-Za-z0-9_-]+)`)
	placeNamePattern = regexp.MustCompile(`/place/([^/@]+)/`)
	coordsPattern    = regexp.MustCompile(`/@([-\d.]+),([-\d.]+)`)
	unsafeChars      = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// FromURL extracts a stable identifier from a Google Maps URL.
// The fallback chain, first match wins:
//
//  1. place_id:<token> query parameter
//  2. /place/<name>/ path segment, sanitized
//  3. /@<lat>,<lon> coordinates
//  4. current unix timestamp (no stable identifier in the input)
//
// Rules 1-3 are deterministic for the same input.
func FromURL(targetURL string) string {
	if m := placeIDPattern.FindStringSubmatch(targetURL); m != nil {
		return truncate(m[1], maxIDLen)
	}

	if m := placeNamePattern.FindStringSubmatch(targetURL); m != nil {
		return truncate(unsafeChars.ReplaceAllString(m[1], "_"), maxIDLen)
	}

	if m := coordsPattern.FindStringSubmatch(targetURL); m != nil {
		lat := truncate(strings.ReplaceAll(m[1], ".", "_"), 10)
		lon := truncate(strings.ReplaceAll(m[2], ".", "_"), 10)
		return fmt.Sprintf("place_%s_%s", lat, lon)
	}

	return fmt.Sprintf("place_%d", time.Now().Unix())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
