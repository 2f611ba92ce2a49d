package occupancy

import (
	"time"

	"go.uber.org/zap"

	"frontdesk/internal/reservation"
	"frontdesk/internal/room"
)

// LifecycleResult is the resolver's full answer for one room at one moment.
// It is a derived projection, recomputed on every call, never persisted.
type LifecycleResult struct {
	State          State
	DisplayStatus  DisplayStatus
	StatusMessage  string
	AllowedActions []Action
	// Active is the reservation governing the room, if any.
	Active *reservation.Reservation
}

// Resolver is the single shared entry point for room status. Every consumer
// (grid summary, detail drawer, reports) resolves through it; no call site
// may reimplement the filter/priority/classification pipeline locally.
type Resolver struct {
	Hours OperationsHours
	Log   *zap.Logger
}

func NewResolver(hours OperationsHours, log *zap.Logger) Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return Resolver{Hours: hours, Log: log}
}

// ResolveRoomStatus composes the interval filter, active-reservation
// selector, lifecycle classifier and action gate into one deterministic
// verdict. It performs no I/O: reservations, room and gate facts arrive
// already fetched.
//
// referenceDate is the calendar date being evaluated (usually today);
// now is the wall-clock instant used for the time-of-day boundaries. When
// referenceDate is in the past relative to now, the state is still computed
// for historical views but the action set is empty.
func (rs Resolver) ResolveRoomStatus(rm room.Room, reservations []reservation.Reservation, referenceDate, now time.Time, gc GateContext) LifecycleResult {
	candidates := OverlapCandidates(reservations, referenceDate)
	active := SelectActive(candidates, referenceDate, rs.Log)

	// Classification runs at the reference moment: on today's date that is
	// simply now; on another date it is that calendar day at now's clock
	// time, so time-of-day boundaries keep meaning something.
	eval := now
	if !sameDay(referenceDate, now) {
		y, m, d := referenceDate.Date()
		eval = time.Date(y, m, d, now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	}
	cls := Classify(eval, rs.Hours, active, rm.ManualStatus)

	gc.Historical = dayBefore(referenceDate, now)
	return LifecycleResult{
		State:          cls.State,
		DisplayStatus:  cls.DisplayStatus,
		StatusMessage:  cls.StatusMessage,
		AllowedActions: AllowedActions(cls.State, gc),
		Active:         active,
	}
}

// ResolveIncomingReservation detects a same-day turnover booking for the
// room: evaluated only while the active reservation is checked in and due
// out on (or before) referenceDate, and searched over the unfiltered
// reservation list.
func (rs Resolver) ResolveIncomingReservation(reservations []reservation.Reservation, referenceDate time.Time) *reservation.Reservation {
	candidates := OverlapCandidates(reservations, referenceDate)
	active := SelectActive(candidates, referenceDate, rs.Log)
	return Incoming(reservations, active, referenceDate)
}
