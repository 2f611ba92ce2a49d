package occupancy

// State is the fine-grained lifecycle classification for a room at a
// reference moment. It is derived on every evaluation and never persisted.
type State string

const (
	StateVacant         State = "vacant"
	StateArrivingEarly  State = "arriving_early"
	StateArrivingToday  State = "arriving_today"
	StateReservedFuture State = "reserved_future"
	StateInHouse        State = "in_house"
	StateDepartingToday State = "departing_today"
	StateOverstay       State = "overstay"

	// Manual overrides surface as states of their own so callers get one
	// tagged value instead of a flat string mixing manual and derived
	// meanings.
	StateCleaning    State = "cleaning"
	StateMaintenance State = "maintenance"
	StateOutOfOrder  State = "out_of_order"
)

// DisplayStatus is the coarser, UI-facing label.
type DisplayStatus string

const (
	DisplayAvailable   DisplayStatus = "available"
	DisplayReserved    DisplayStatus = "reserved"
	DisplayOccupied    DisplayStatus = "occupied"
	DisplayOverstay    DisplayStatus = "overstay"
	DisplayCleaning    DisplayStatus = "cleaning"
	DisplayMaintenance DisplayStatus = "maintenance"
)

var displayByState = map[State]DisplayStatus{
	StateVacant:         DisplayAvailable,
	StateArrivingEarly:  DisplayReserved,
	StateArrivingToday:  DisplayReserved,
	StateReservedFuture: DisplayReserved,
	StateInHouse:        DisplayOccupied,
	StateDepartingToday: DisplayOccupied,
	StateOverstay:       DisplayOverstay,
	StateCleaning:       DisplayCleaning,
	StateMaintenance:    DisplayMaintenance,
	StateOutOfOrder:     DisplayMaintenance,
}

// DisplayFor maps a lifecycle state to its presentation label.
func DisplayFor(s State) DisplayStatus {
	if d, ok := displayByState[s]; ok {
		return d
	}
	return DisplayAvailable
}

// OperationsHours is hotel-wide configuration for the check-in/check-out
// wall-clock boundaries.
type OperationsHours struct {
	CheckIn  TimeOfDay
	CheckOut TimeOfDay
}

// DefaultOperationsHours is the documented fallback when the hotel has not
// configured its hours: check-in 14:00, check-out 12:00.
func DefaultOperationsHours() OperationsHours {
	return OperationsHours{
		CheckIn:  TimeOfDay{Hour: 14},
		CheckOut: TimeOfDay{Hour: 12},
	}
}
