package room

import "fmt"

// ManualStatus is a front-desk override set on the room itself. When set to
// anything but ManualNone it takes precedence over whatever the reservation
// lifecycle would otherwise derive.
type ManualStatus string

const (
	ManualNone        ManualStatus = "none"
	ManualCleaning    ManualStatus = "cleaning"
	ManualMaintenance ManualStatus = "maintenance"
	ManualOutOfOrder  ManualStatus = "out_of_order"
)

func ParseManualStatus(s string) (ManualStatus, error) {
	switch ManualStatus(s) {
	case ManualNone, ManualCleaning, ManualMaintenance, ManualOutOfOrder:
		return ManualStatus(s), nil
	default:
		return "", fmt.Errorf("unknown manual status: %s", s)
	}
}

// Overriding reports whether the manual status suppresses lifecycle-derived
// occupancy.
func (m ManualStatus) Overriding() bool {
	return m == ManualCleaning || m == ManualMaintenance || m == ManualOutOfOrder
}

type Room struct {
	ID           string
	Number       string
	CategoryID   string
	Floor        int
	ManualStatus ManualStatus
	// DoNotDisturb is a structured flag; it used to live as a "[DND]" marker
	// inside the notes text.
	DoNotDisturb bool
	Notes        string
}
