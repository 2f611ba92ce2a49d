package occupancy

import (
	"testing"

	"frontdesk/internal/reservation"
	"frontdesk/internal/room"
)

func TestClassify_VacantWhenNoActiveReservation(t *testing.T) {
	got := Classify(at(t, "2024-01-01T10:00"), defaultHours(), nil, room.ManualNone)
	if got.State != StateVacant || got.DisplayStatus != DisplayAvailable {
		t.Fatalf("expected vacant/available, got %+v", got)
	}
}

func TestClassify_ManualStatusOverridesEverything(t *testing.T) {
	active := stay(t, "a", reservation.StatusCheckedIn, "2024-01-01", "2024-01-03")

	for _, tc := range []struct {
		manual      room.ManualStatus
		wantState   State
		wantDisplay DisplayStatus
	}{
		{room.ManualMaintenance, StateMaintenance, DisplayMaintenance},
		{room.ManualOutOfOrder, StateOutOfOrder, DisplayMaintenance},
		{room.ManualCleaning, StateCleaning, DisplayCleaning},
	} {
		got := Classify(at(t, "2024-01-02T10:00"), defaultHours(), &active, tc.manual)
		if got.State != tc.wantState || got.DisplayStatus != tc.wantDisplay {
			t.Fatalf("manual %s: expected %s/%s, got %+v", tc.manual, tc.wantState, tc.wantDisplay, got)
		}
	}
}

func TestClassify_ArrivingEarlyBeforeCheckInTime(t *testing.T) {
	// Scenario: reservation arrives 2024-01-01, now is 10:00, check-in 14:00.
	active := stay(t, "a", reservation.StatusReserved, "2024-01-01", "2024-01-03")

	got := Classify(at(t, "2024-01-01T10:00"), defaultHours(), &active, room.ManualNone)
	if got.State != StateArrivingEarly {
		t.Fatalf("expected arriving_early, got %+v", got)
	}
	if got.DisplayStatus != DisplayReserved {
		t.Fatalf("expected reserved display, got %+v", got)
	}
}

func TestClassify_ArrivingTodayFromCheckInTime(t *testing.T) {
	active := stay(t, "a", reservation.StatusReserved, "2024-01-01", "2024-01-03")

	// Exactly at the boundary counts as open for check-in.
	got := Classify(at(t, "2024-01-01T14:00"), defaultHours(), &active, room.ManualNone)
	if got.State != StateArrivingToday {
		t.Fatalf("expected arriving_today at 14:00, got %+v", got)
	}
}

func TestClassify_ReservedFuture(t *testing.T) {
	active := stay(t, "a", reservation.StatusReserved, "2024-01-05", "2024-01-07")

	got := Classify(at(t, "2024-01-01T10:00"), defaultHours(), &active, room.ManualNone)
	if got.State != StateReservedFuture || got.DisplayStatus != DisplayReserved {
		t.Fatalf("expected reserved_future, got %+v", got)
	}
}

func TestClassify_InHouse(t *testing.T) {
	active := stay(t, "a", reservation.StatusCheckedIn, "2024-01-01", "2024-01-03")

	got := Classify(at(t, "2024-01-02T23:59"), defaultHours(), &active, room.ManualNone)
	if got.State != StateInHouse || got.DisplayStatus != DisplayOccupied {
		t.Fatalf("expected in_house/occupied, got %+v", got)
	}
}

func TestClassify_DepartingTodayBeforeCheckOutTime(t *testing.T) {
	active := stay(t, "a", reservation.StatusCheckedIn, "2024-01-01", "2024-01-03")

	got := Classify(at(t, "2024-01-03T09:00"), defaultHours(), &active, room.ManualNone)
	if got.State != StateDepartingToday {
		t.Fatalf("expected departing_today, got %+v", got)
	}
	if got.StatusMessage != "Due out at 12:00" {
		t.Fatalf("unexpected status message %q", got.StatusMessage)
	}
}

func TestClassify_OverstayAtExactCheckOutMinute(t *testing.T) {
	// now >= checkOutTime on the checkout day flips straight to overstay.
	active := stay(t, "a", reservation.StatusCheckedIn, "2024-01-01", "2024-01-03")

	got := Classify(at(t, "2024-01-03T12:00"), defaultHours(), &active, room.ManualNone)
	if got.State != StateOverstay {
		t.Fatalf("expected overstay at exactly 12:00, got %+v", got)
	}
}

func TestClassify_OverstayRegardlessOfTimeOfDay(t *testing.T) {
	// Checkout date strictly in the past: overstay even at 00:01.
	active := stay(t, "a", reservation.StatusCheckedIn, "2024-01-01", "2024-01-03")

	for _, now := range []string{"2024-01-04T00:01", "2024-01-04T23:00", "2024-01-05T08:00"} {
		got := Classify(at(t, now), defaultHours(), &active, room.ManualNone)
		if got.State != StateOverstay || got.DisplayStatus != DisplayOverstay {
			t.Fatalf("now %s: expected overstay, got %+v", now, got)
		}
	}
}

func TestClassify_OverstayMessageCountsDays(t *testing.T) {
	active := stay(t, "a", reservation.StatusCheckedIn, "2024-01-01", "2024-01-03")

	got := Classify(at(t, "2024-01-05T08:00"), defaultHours(), &active, room.ManualNone)
	if got.StatusMessage != "2 days overdue" {
		t.Fatalf("unexpected overstay message %q", got.StatusMessage)
	}

	got = Classify(at(t, "2024-01-03T15:00"), defaultHours(), &active, room.ManualNone)
	if got.StatusMessage != "Past 12:00 due-out" {
		t.Fatalf("unexpected same-day overstay message %q", got.StatusMessage)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	active := stay(t, "a", reservation.StatusCheckedIn, "2024-01-01", "2024-01-03")
	now := at(t, "2024-01-02T10:00")

	first := Classify(now, defaultHours(), &active, room.ManualNone)
	second := Classify(now, defaultHours(), &active, room.ManualNone)
	if first != second {
		t.Fatalf("classifier not idempotent: %+v vs %+v", first, second)
	}
}
