package reservation

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReserved, StatusCheckedIn, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown reservation status: %s", s)
	}
}

// Terminal reports whether the reservation can no longer govern a room.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusReserved:  {StatusCheckedIn: true, StatusCancelled: true},
	StatusCheckedIn: {StatusCompleted: true},
	StatusCompleted: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// Reservation is a stay booked against a single room.
//
// CheckInDate and CheckOutDate are civil dates (midnight in the hotel's
// local zone); the time-of-day boundaries come from the hotel's operations
// hours, not from these fields. ActualCheckIn/ActualCheckOut are recorded
// by the front desk when the guest physically arrives/leaves.
type Reservation struct {
	ID             string     `json:"id"`
	RoomID         string     `json:"roomId"`
	GuestID        string     `json:"guestId"`
	OrganizationID *string    `json:"organizationId,omitempty"`
	CheckInDate    time.Time  `json:"checkInDate"`
	CheckOutDate   time.Time  `json:"checkOutDate"`
	Status         Status     `json:"status"`
	ActualCheckIn  *time.Time `json:"actualCheckIn,omitempty"`
	ActualCheckOut *time.Time `json:"actualCheckOut,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
