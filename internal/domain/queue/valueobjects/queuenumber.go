package valueobjects

import (
	"fmt"
	"regexp"
)

// DefaultNumberPad is the zero-padding width of the sequence part of a queue
// number: prefix "A" and sequence 7 render as "A007".
const DefaultNumberPad = 3

var prefixPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// FormatQueueNumber renders the human-facing queue number for a counter
// prefix and per-day sequence. The sequence keeps growing past the pad width
// ("A1000" after "A999") so the number stays unique.
func FormatQueueNumber(prefix string, sequence int, pad int) string {
	if pad <= 0 {
		pad = DefaultNumberPad
	}
	return fmt.Sprintf("%s%0*d", prefix, pad, sequence)
}

// ValidatePrefix checks a counter queue-number prefix: uppercase letters only.
func ValidatePrefix(prefix string) error {
	if !prefixPattern.MatchString(prefix) {
		return fmt.Errorf("invalid queue number prefix %q: must be 1-5 uppercase letters", prefix)
	}
	return nil
}
