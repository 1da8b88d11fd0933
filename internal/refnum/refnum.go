// Package refnum allocates the short human-facing reference numbers attached
// to contact and ticket submissions. Numbers are random 3-digit strings
// probed for uniqueness against the record store; the caller supplies the
// probe so the allocator stays storage-agnostic.
package refnum

import (
	"math/rand"
	"regexp"
	"strconv"
	"time"
)

// maxAttempts bounds the generate-and-probe loop.
const maxAttempts = 10

// referenceRE matches the reference-number shape: exactly three decimal digits.
var referenceRE = regexp.MustCompile(`^\d{3}$`)

// Probe reports whether a candidate reference number is already assigned to a
// live record. An error means the store could not be consulted.
type Probe func(candidate string) (taken bool, err error)

// IsReference reports whether s has the 3-digit reference-number shape.
func IsReference(s string) bool {
	return referenceRE.MatchString(s)
}

// Generate returns a random candidate in [100, 999]. Candidates below 100 are
// never produced, so random references are never zero-padded.
func Generate() string {
	return strconv.Itoa(rand.Intn(900) + 100)
}

// Allocate returns a reference number that the probe reported as free, making
// up to maxAttempts attempts with a fresh candidate each time. A probe error
// counts the candidate as taken: availability wins over strict uniqueness
// when the store is unreachable.
//
// When every attempt is exhausted the current time modulo 1000, zero-padded
// to 3 digits, is returned without a further uniqueness check. Uniqueness is
// therefore a best-effort property, not a guarantee; the probe-then-insert
// sequence is also not atomic, so two concurrent callers can observe the same
// candidate as free and both claim it.
func Allocate(probe Probe) string {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := Generate()
		taken, err := probe(candidate)
		if err != nil {
			// Assume taken and try again.
			continue
		}
		if !taken {
			return candidate
		}
	}
	return Fallback(time.Now())
}

// Fallback derives a reference number from t: milliseconds since the epoch
// modulo 1000, left-padded to 3 digits (e.g. "007").
func Fallback(t time.Time) string {
	n := t.UnixMilli() % 1000
	s := strconv.FormatInt(n, 10)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
