package occupancy

import (
	"time"

	"frontdesk/internal/reservation"
)

// OverlapCandidates narrows a room's reservations down to the ones that can
// govern its status on referenceDate.
//
// Rules:
//   - completed/cancelled reservations never qualify;
//   - a reservation qualifies when its stay interval spans the reference
//     date (checkInDate <= referenceDate <= checkOutDate);
//   - a checked-in reservation additionally qualifies after its booked
//     checkout date has passed, so an overstaying guest stays visible until
//     checkout is actually recorded.
//
// Input order is preserved. No side effects.
func OverlapCandidates(reservations []reservation.Reservation, referenceDate time.Time) []reservation.Reservation {
	out := make([]reservation.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Status.Terminal() {
			continue
		}
		started := !dayAfter(r.CheckInDate, referenceDate)
		if started && !dayBefore(r.CheckOutDate, referenceDate) {
			out = append(out, r)
			continue
		}
		if r.Status == reservation.StatusCheckedIn && started {
			out = append(out, r)
		}
	}
	return out
}
