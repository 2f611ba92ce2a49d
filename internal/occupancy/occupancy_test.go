package occupancy

import (
	"testing"
	"time"

	"frontdesk/internal/reservation"
)

// Shared fixture helpers for the resolver tests.

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date fixture %q: %v", s, err)
	}
	return d
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		t.Fatalf("bad timestamp fixture %q: %v", s, err)
	}
	return ts
}

func stay(t *testing.T, id string, status reservation.Status, checkIn, checkOut string) reservation.Reservation {
	t.Helper()
	return reservation.Reservation{
		ID:           id,
		RoomID:       "room-101",
		GuestID:      "guest-" + id,
		CheckInDate:  day(t, checkIn),
		CheckOutDate: day(t, checkOut),
		Status:       status,
		CreatedAt:    day(t, checkIn).Add(-48 * time.Hour),
	}
}

func defaultHours() OperationsHours {
	return DefaultOperationsHours()
}
