package occupancy

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"frontdesk/internal/reservation"
)

// SelectActive picks at most one reservation to govern the room on
// referenceDate. Priority, first match wins:
//
//  1. a checked-in reservation;
//  2. a reserved reservation arriving on referenceDate;
//  3. any remaining candidate.
//
// Within a tier, ties are broken by earliest CreatedAt, then reservation ID.
// A tie means the room is double-booked at the same priority; the selector
// still answers deterministically but logs a warning so the conflict is
// visible to operations.
func SelectActive(candidates []reservation.Reservation, referenceDate time.Time, log *zap.Logger) *reservation.Reservation {
	if log == nil {
		log = zap.NewNop()
	}

	tiers := [][]reservation.Reservation{nil, nil, nil}
	for _, r := range candidates {
		switch {
		case r.Status == reservation.StatusCheckedIn:
			tiers[0] = append(tiers[0], r)
		case r.Status == reservation.StatusReserved && sameDay(r.CheckInDate, referenceDate):
			tiers[1] = append(tiers[1], r)
		default:
			tiers[2] = append(tiers[2], r)
		}
	}

	for tier, rs := range tiers {
		if len(rs) == 0 {
			continue
		}
		sortStable(rs)
		if len(rs) > 1 && tier < 2 {
			log.Warn("ambiguous active-reservation selection, falling back to earliest created",
				zap.String("room_id", rs[0].RoomID),
				zap.String("selected", rs[0].ID),
				zap.String("runner_up", rs[1].ID),
				zap.Time("reference_date", referenceDate),
			)
		}
		chosen := rs[0]
		return &chosen
	}
	return nil
}

func sortStable(rs []reservation.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.Before(rs[j].CreatedAt)
		}
		return rs[i].ID < rs[j].ID
	})
}

// Incoming finds a same-day turnover reservation: while the active guest is
// departing today or overstaying, a different reserved booking arriving on
// referenceDate lets the desk start servicing the next guest before the
// departing folio is closed.
//
// The search runs over the room's original, unfiltered reservation list,
// because the incoming booking may not overlap the active stay at all.
func Incoming(all []reservation.Reservation, active *reservation.Reservation, referenceDate time.Time) *reservation.Reservation {
	if active == nil || active.Status != reservation.StatusCheckedIn {
		return nil
	}
	if dayAfter(active.CheckOutDate, referenceDate) {
		return nil
	}

	var matches []reservation.Reservation
	for _, r := range all {
		if r.ID == active.ID {
			continue
		}
		if r.Status == reservation.StatusReserved && sameDay(r.CheckInDate, referenceDate) {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sortStable(matches)
	chosen := matches[0]
	return &chosen
}
