// Package biztime provides the business-day calendar used for ticket
// sequencing and capacity scoping. All storage and transport use UTC; the
// business timezone only decides which calendar day a ticket belongs to.
//
// The deployment region runs on a single fixed UTC offset (default +7). This
// is a deliberate assumption carried over from the operating environment: no
// DST, no per-location timezone. The queue core treats the resulting
// YYYY-MM-DD string as an opaque key and never recomputes it.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultUTCOffsetHours is the default business UTC offset.
	DefaultUTCOffsetHours = 7

	// DateLayout is the canonical service-date key format.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
)

// Init initializes the business timezone from a fixed UTC offset.
// Should be called once at startup.
func Init(offsetHours int) {
	bizLocationOnce.Do(func() {
		name := fmt.Sprintf("UTC%+d", offsetHours)
		bizLocation = time.FixedZone(name, offsetHours*3600)
	})
}

// Location returns the business timezone location. If not explicitly
// initialized, automatically initializes with the default offset.
func Location() *time.Location {
	if bizLocation == nil {
		Init(DefaultUTCOffsetHours)
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ServiceDate returns the calendar day the given instant falls on in the
// business timezone, as a YYYY-MM-DD key.
func ServiceDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// Today returns the current service date.
func Today() string {
	return ServiceDate(NowUTC())
}

// ParseServiceDate validates a YYYY-MM-DD key and returns its canonical form.
func ParseServiceDate(s string) (string, error) {
	t, err := time.ParseInLocation(DateLayout, s, Location())
	if err != nil {
		return "", fmt.Errorf("invalid service date %q: %w", s, err)
	}
	return t.Format(DateLayout), nil
}

// MinuteOfDay returns the minute within the business day for the given
// instant. Counter open-hour windows are compared against this value.
func MinuteOfDay(t time.Time) int {
	local := t.In(Location())
	return local.Hour()*60 + local.Minute()
}
