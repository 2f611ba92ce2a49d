package occupancy

import (
	"testing"
	"time"
)

func TestDayComparisonsIgnoreTimeOfDay(t *testing.T) {
	a := at(t, "2024-01-02T23:59")
	b := at(t, "2024-01-02T00:00")
	if !sameDay(a, b) {
		t.Fatalf("expected same calendar day")
	}
	if !dayBefore(b, at(t, "2024-01-03T00:00")) {
		t.Fatalf("expected Jan 2 before Jan 3")
	}
	if !dayAfter(at(t, "2024-02-01T00:00"), a) {
		t.Fatalf("expected Feb 1 after Jan 2")
	}
}

func TestDaysBetween(t *testing.T) {
	if got := daysBetween(day(t, "2024-01-03"), at(t, "2024-01-05T08:00")); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
	if got := daysBetween(day(t, "2024-01-03"), day(t, "2024-01-03")); got != 0 {
		t.Fatalf("expected 0 days, got %d", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("14:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tod.Hour != 14 || tod.Minute != 30 {
		t.Fatalf("unexpected %+v", tod)
	}
	if tod.String() != "14:30" {
		t.Fatalf("unexpected string %q", tod.String())
	}
	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatalf("expected invalid hour to fail")
	}
}

func TestTimeOfDayOnAnchorsToDay(t *testing.T) {
	d := at(t, "2024-01-03T09:15")
	anchored := (TimeOfDay{Hour: 12}).On(d)
	want := time.Date(2024, 1, 3, 12, 0, 0, 0, d.Location())
	if !anchored.Equal(want) {
		t.Fatalf("expected %v, got %v", want, anchored)
	}
}
