package occupancy

import (
	"fmt"
	"time"
)

// Calendar-day comparisons. Reservation check-in/out fields and reference
// dates are civil dates; comparing the underlying instants would leak zone
// offsets into the overlap rules, so everything below compares y/m/d only.

func compareDay(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return cmpInt(ay, by)
	case am != bm:
		return cmpInt(int(am), int(bm))
	default:
		return cmpInt(ad, bd)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func sameDay(a, b time.Time) bool   { return compareDay(a, b) == 0 }
func dayBefore(a, b time.Time) bool { return compareDay(a, b) < 0 }
func dayAfter(a, b time.Time) bool  { return compareDay(a, b) > 0 }

// daysBetween returns whole calendar days from a to b (b after a => positive).
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// TimeOfDay is a wall-clock boundary such as the hotel's 14:00 check-in.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// On anchors the time-of-day to the calendar day of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, t.Hour, t.Minute, 0, 0, d.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay accepts "HH:MM" wall-clock strings.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}
