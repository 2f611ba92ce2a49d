package occupancy

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Action is a front-desk operation the gate may permit for a room's current
// lifecycle state.
type Action string

const (
	ActionCheckIn         Action = "check_in"
	ActionEarlyCheckIn    Action = "early_check_in"
	ActionCheckout        Action = "checkout"
	ActionForceCheckout   Action = "force_checkout"
	ActionExtendStay      Action = "extend_stay"
	ActionTransferRoom    Action = "transfer_room"
	ActionAddCharge       Action = "add_charge"
	ActionCollectPayment  Action = "collect_payment"
	ActionCancel          Action = "cancel"
	ActionViewReservation Action = "view_reservation"
)

var (
	ErrActionNotAllowed = errors.New("action not allowed in current room state")
	ErrApprovalRequired = errors.New("manager approval token required")
)

// Policy is the tenant's checkout policy.
//
// ApprovalThreshold is the balance at or above which any checkout (normal or
// forced) requires a manager-approval token; a zero threshold disables the
// rule.
type Policy struct {
	AllowCheckoutWithDebt bool
	ApprovalThreshold     decimal.Decimal
}

// GateContext carries the externally-supplied facts the gate combines with
// the lifecycle state: the folio's net balance, the tenant policy, whether
// the caller presented an approval token, and whether the caller holds the
// finance-management capability. Historical marks a reference date in the
// past, for which no action is ever permitted.
type GateContext struct {
	Balance          decimal.Decimal
	Policy           Policy
	HasApprovalToken bool
	CanManageFinance bool
	Historical       bool
}

// AllowedActions returns the set of operations the front desk may offer for
// the given lifecycle state. The result is what a UI should render; hard
// preconditions that depend on out-of-band input (the approval token) are
// enforced by Authorize at execution time, so an action can be listed here
// and still refuse to run without approval.
func AllowedActions(state State, gc GateContext) []Action {
	if gc.Historical {
		return nil
	}

	debt := gc.Balance.IsPositive()

	switch state {
	case StateArrivingEarly:
		return []Action{ActionEarlyCheckIn, ActionCancel, ActionViewReservation}
	case StateArrivingToday:
		return []Action{ActionCheckIn, ActionCancel, ActionViewReservation}
	case StateReservedFuture:
		return []Action{ActionCancel, ActionViewReservation}
	case StateInHouse, StateDepartingToday:
		out := []Action{}
		if !debt || gc.Policy.AllowCheckoutWithDebt {
			out = append(out, ActionCheckout)
		}
		if debt && gc.CanManageFinance {
			out = append(out, ActionForceCheckout)
		}
		out = append(out, ActionExtendStay, ActionTransferRoom, ActionAddCharge)
		if debt {
			out = append(out, ActionCollectPayment)
		}
		return append(out, ActionViewReservation)
	case StateOverstay:
		out := []Action{}
		// An overstaying guest settles in full before a normal checkout,
		// regardless of the debt policy.
		if !debt {
			out = append(out, ActionCheckout)
		}
		if debt && gc.CanManageFinance {
			out = append(out, ActionForceCheckout)
		}
		out = append(out, ActionExtendStay, ActionTransferRoom, ActionAddCharge)
		if debt {
			out = append(out, ActionCollectPayment)
		}
		return append(out, ActionViewReservation)
	default:
		// vacant and manual overrides offer no reservation actions.
		return nil
	}
}

// Authorize is the hard gate in front of a mutating action. It re-checks
// availability and then the approval-token rules:
//
//   - early check-in never proceeds without a manager-approval token;
//   - at or above the policy threshold, any checkout (normal or forced)
//     requires a manager-approval token, whatever the debt policy says.
func Authorize(action Action, state State, gc GateContext) error {
	if !actionListed(action, AllowedActions(state, gc)) {
		return ErrActionNotAllowed
	}

	switch action {
	case ActionEarlyCheckIn:
		if !gc.HasApprovalToken {
			return ErrApprovalRequired
		}
	case ActionCheckout, ActionForceCheckout:
		if thresholdReached(gc) && !gc.HasApprovalToken {
			return ErrApprovalRequired
		}
	}
	return nil
}

func thresholdReached(gc GateContext) bool {
	if !gc.Policy.ApprovalThreshold.IsPositive() {
		return false
	}
	return gc.Balance.GreaterThanOrEqual(gc.Policy.ApprovalThreshold)
}

func actionListed(a Action, in []Action) bool {
	for _, x := range in {
		if x == a {
			return true
		}
	}
	return false
}
