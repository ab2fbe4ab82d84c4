package service

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// ErrInvalidDomain indicates the submitted string is not a plausible
// domain after normalization.
var ErrInvalidDomain = errors.New("invalid domain")

var (
	domainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(\.[a-z0-9][a-z0-9-]*)*\.[a-z]{2,}$`)
	idnaProfile   = idna.Lookup
)

// NormalizeDomain lowercases the candidate, strips a single leading
// "www." prefix, converts internationalized names to ASCII, and
// validates the result. The returned string is the canonical cache key
// for the domain.
func NormalizeDomain(raw string) (string, error) {
	domain := strings.ToLower(strings.TrimSpace(raw))
	domain = strings.TrimPrefix(domain, "www.")

	if ascii, err := idnaProfile.ToASCII(domain); err == nil && ascii != "" {
		domain = ascii
	}

	if !domainPattern.MatchString(domain) {
		return "", ErrInvalidDomain
	}
	return domain, nil
}
