// Package counter holds the read-side entities the queue engine consults
// before issuing tickets: service counters and their owning locations. Both
// are administered elsewhere; the engine never mutates them.
package counter

import (
	"fmt"
	"strconv"
	"strings"

	vo "lineup/internal/domain/queue/valueobjects"
)

// Counter is a single service window with its own queue, hours, and daily
// capacity.
type Counter struct {
	id             uint
	locationID     uint
	name           string
	prefix         string
	openMinute     int
	closeMinute    int
	capacityPerDay int
	active         bool
}

func ReconstructCounter(
	id uint,
	locationID uint,
	name string,
	prefix string,
	openTime string,
	closeTime string,
	capacityPerDay int,
	active bool,
) (*Counter, error) {
	if id == 0 {
		return nil, fmt.Errorf("counter ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("counter name is required")
	}
	if err := vo.ValidatePrefix(prefix); err != nil {
		return nil, err
	}
	if capacityPerDay <= 0 {
		return nil, fmt.Errorf("capacity per day must be positive")
	}

	openMinute, err := parseMinuteOfDay(openTime)
	if err != nil {
		return nil, fmt.Errorf("invalid open time: %w", err)
	}
	closeMinute, err := parseMinuteOfDay(closeTime)
	if err != nil {
		return nil, fmt.Errorf("invalid close time: %w", err)
	}

	return &Counter{
		id:             id,
		locationID:     locationID,
		name:           name,
		prefix:         prefix,
		openMinute:     openMinute,
		closeMinute:    closeMinute,
		capacityPerDay: capacityPerDay,
		active:         active,
	}, nil
}

func (c *Counter) ID() uint {
	return c.id
}

func (c *Counter) LocationID() uint {
	return c.locationID
}

func (c *Counter) Name() string {
	return c.name
}

func (c *Counter) Prefix() string {
	return c.prefix
}

func (c *Counter) CapacityPerDay() int {
	return c.capacityPerDay
}

func (c *Counter) IsActive() bool {
	return c.active
}

// IsOpenAt reports whether the counter accepts tickets at the given minute of
// the business day. A window whose open and close coincide is treated as
// always open; a close before open wraps past midnight.
func (c *Counter) IsOpenAt(minuteOfDay int) bool {
	if c.openMinute == c.closeMinute {
		return true
	}
	if c.openMinute < c.closeMinute {
		return minuteOfDay >= c.openMinute && minuteOfDay < c.closeMinute
	}
	return minuteOfDay >= c.openMinute || minuteOfDay < c.closeMinute
}

// parseMinuteOfDay parses an "HH:MM" time-of-day into minutes from midnight.
func parseMinuteOfDay(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// Location is the owning site of one or more counters. Only its active flag
// matters to the queue engine.
type Location struct {
	id     uint
	name   string
	active bool
}

func ReconstructLocation(id uint, name string, active bool) (*Location, error) {
	if id == 0 {
		return nil, fmt.Errorf("location ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("location name is required")
	}
	return &Location{id: id, name: name, active: active}, nil
}

func (l *Location) ID() uint {
	return l.id
}

func (l *Location) Name() string {
	return l.name
}

func (l *Location) IsActive() bool {
	return l.active
}
