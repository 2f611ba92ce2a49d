package occupancy

import (
	"fmt"
	"time"

	"frontdesk/internal/reservation"
	"frontdesk/internal/room"
)

// Classification is the lifecycle verdict before action gating.
type Classification struct {
	State         State
	DisplayStatus DisplayStatus
	StatusMessage string
}

// Classify derives the room's lifecycle state at instant now.
//
// Precedence: a manual override on the room beats everything; otherwise the
// active reservation (or its absence) decides. Pure function of its inputs;
// identical inputs always produce identical output.
func Classify(now time.Time, hours OperationsHours, active *reservation.Reservation, manual room.ManualStatus) Classification {
	if manual.Overriding() {
		return classifyManual(manual)
	}

	if active == nil {
		return Classification{
			State:         StateVacant,
			DisplayStatus: DisplayAvailable,
			StatusMessage: "Available",
		}
	}

	switch active.Status {
	case reservation.StatusReserved:
		return classifyReserved(now, hours, active)
	case reservation.StatusCheckedIn:
		return classifyCheckedIn(now, hours, active)
	default:
		// Terminal reservations never reach the classifier through the
		// facade; degrade to vacant rather than fail a status screen.
		return Classification{
			State:         StateVacant,
			DisplayStatus: DisplayAvailable,
			StatusMessage: "Available",
		}
	}
}

func classifyManual(manual room.ManualStatus) Classification {
	switch manual {
	case room.ManualCleaning:
		return Classification{StateCleaning, DisplayCleaning, "Room held for cleaning"}
	case room.ManualOutOfOrder:
		return Classification{StateOutOfOrder, DisplayMaintenance, "Room out of order"}
	default:
		return Classification{StateMaintenance, DisplayMaintenance, "Room under maintenance"}
	}
}

func classifyReserved(now time.Time, hours OperationsHours, active *reservation.Reservation) Classification {
	if sameDay(active.CheckInDate, now) {
		if now.Before(hours.CheckIn.On(now)) {
			return Classification{
				State:         StateArrivingEarly,
				DisplayStatus: DisplayReserved,
				StatusMessage: fmt.Sprintf("Early arrival, check-in opens at %s", hours.CheckIn),
			}
		}
		return Classification{
			State:         StateArrivingToday,
			DisplayStatus: DisplayReserved,
			StatusMessage: "Arriving today",
		}
	}
	return Classification{
		State:         StateReservedFuture,
		DisplayStatus: DisplayReserved,
		StatusMessage: fmt.Sprintf("Reserved from %s", active.CheckInDate.Format("Jan 2")),
	}
}

func classifyCheckedIn(now time.Time, hours OperationsHours, active *reservation.Reservation) Classification {
	switch {
	case dayAfter(active.CheckOutDate, now):
		return Classification{
			State:         StateInHouse,
			DisplayStatus: DisplayOccupied,
			StatusMessage: fmt.Sprintf("In house through %s", active.CheckOutDate.Format("Jan 2")),
		}
	case sameDay(active.CheckOutDate, now) && now.Before(hours.CheckOut.On(now)):
		return Classification{
			State:         StateDepartingToday,
			DisplayStatus: DisplayOccupied,
			StatusMessage: fmt.Sprintf("Due out at %s", hours.CheckOut),
		}
	default:
		// Checkout day past the due-out time, or any later day. The date
		// comparison decides first; time-of-day only matters on the
		// checkout day itself.
		return Classification{
			State:         StateOverstay,
			DisplayStatus: DisplayOverstay,
			StatusMessage: overstayMessage(now, hours, active),
		}
	}
}

func overstayMessage(now time.Time, hours OperationsHours, active *reservation.Reservation) string {
	days := daysBetween(active.CheckOutDate, now)
	switch {
	case days <= 0:
		return fmt.Sprintf("Past %s due-out", hours.CheckOut)
	case days == 1:
		return "1 day overdue"
	default:
		return fmt.Sprintf("%d days overdue", days)
	}
}
