package occupancy

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func contains(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

func TestAllowedActions_VacantAndManualStatesOfferNothing(t *testing.T) {
	for _, s := range []State{StateVacant, StateCleaning, StateMaintenance, StateOutOfOrder} {
		if got := AllowedActions(s, GateContext{}); len(got) != 0 {
			t.Fatalf("state %s: expected no actions, got %v", s, got)
		}
	}
}

func TestAllowedActions_ArrivingEarlyOffersEarlyCheckInOnly(t *testing.T) {
	got := AllowedActions(StateArrivingEarly, GateContext{})
	if !contains(got, ActionEarlyCheckIn) || contains(got, ActionCheckIn) {
		t.Fatalf("expected early_check_in without check_in, got %v", got)
	}
	if !contains(got, ActionCancel) {
		t.Fatalf("expected cancel available before arrival, got %v", got)
	}
}

func TestAllowedActions_OverstayWithDebtAndNoFinancePermission(t *testing.T) {
	// Scenario: overstay, balance 5000, caller lacks finance permission,
	// debt checkout disallowed: neither checkout nor force-checkout.
	gc := GateContext{
		Balance: decimal.NewFromInt(5000),
		Policy:  Policy{AllowCheckoutWithDebt: false},
	}

	got := AllowedActions(StateOverstay, gc)
	if contains(got, ActionCheckout) {
		t.Fatalf("checkout must be blocked with outstanding balance, got %v", got)
	}
	if contains(got, ActionForceCheckout) {
		t.Fatalf("force-checkout requires finance permission, got %v", got)
	}
	if !contains(got, ActionCollectPayment) || !contains(got, ActionAddCharge) {
		t.Fatalf("expected collect_payment and add_charge during overstay, got %v", got)
	}
}

func TestAllowedActions_ForceCheckoutNeedsDebtAndPermission(t *testing.T) {
	gc := GateContext{
		Balance:          decimal.NewFromInt(100),
		CanManageFinance: true,
	}
	if got := AllowedActions(StateInHouse, gc); !contains(got, ActionForceCheckout) {
		t.Fatalf("expected force_checkout for finance caller with debt, got %v", got)
	}

	gc.Balance = decimal.Zero
	if got := AllowedActions(StateInHouse, gc); contains(got, ActionForceCheckout) {
		t.Fatalf("force_checkout must not appear without debt, got %v", got)
	}
}

func TestAllowedActions_DebtPolicyControlsNormalCheckout(t *testing.T) {
	gc := GateContext{Balance: decimal.NewFromInt(100)}
	if got := AllowedActions(StateDepartingToday, gc); contains(got, ActionCheckout) {
		t.Fatalf("checkout must be blocked when policy disallows debt, got %v", got)
	}

	gc.Policy.AllowCheckoutWithDebt = true
	if got := AllowedActions(StateDepartingToday, gc); !contains(got, ActionCheckout) {
		t.Fatalf("checkout should be offered with permissive debt policy, got %v", got)
	}

	// Overstay is stricter: the debt policy does not reopen normal checkout.
	if got := AllowedActions(StateOverstay, gc); contains(got, ActionCheckout) {
		t.Fatalf("overstay checkout requires a settled folio, got %v", got)
	}
}

func TestAllowedActions_HistoricalReferenceDateYieldsNothing(t *testing.T) {
	gc := GateContext{Historical: true, Policy: Policy{AllowCheckoutWithDebt: true}}
	for _, s := range []State{StateArrivingToday, StateInHouse, StateOverstay} {
		if got := AllowedActions(s, gc); len(got) != 0 {
			t.Fatalf("state %s: acting on history must be impossible, got %v", s, got)
		}
	}
}

func TestAuthorize_EarlyCheckInRequiresApprovalToken(t *testing.T) {
	gc := GateContext{}
	if err := Authorize(ActionEarlyCheckIn, StateArrivingEarly, gc); !errors.Is(err, ErrApprovalRequired) {
		t.Fatalf("expected ErrApprovalRequired, got %v", err)
	}

	gc.HasApprovalToken = true
	if err := Authorize(ActionEarlyCheckIn, StateArrivingEarly, gc); err != nil {
		t.Fatalf("expected approval token to unlock early check-in, got %v", err)
	}
}

func TestAuthorize_ThresholdDemandsApprovalDespitePermissivePolicy(t *testing.T) {
	// Scenario: balance 20000, threshold 5000, debt checkout allowed.
	gc := GateContext{
		Balance: decimal.NewFromInt(20000),
		Policy: Policy{
			AllowCheckoutWithDebt: true,
			ApprovalThreshold:     decimal.NewFromInt(5000),
		},
		CanManageFinance: true,
	}

	for _, a := range []Action{ActionCheckout, ActionForceCheckout} {
		if err := Authorize(a, StateInHouse, gc); !errors.Is(err, ErrApprovalRequired) {
			t.Fatalf("%s: expected ErrApprovalRequired, got %v", a, err)
		}
	}

	gc.HasApprovalToken = true
	if err := Authorize(ActionCheckout, StateInHouse, gc); err != nil {
		t.Fatalf("expected checkout authorized with token, got %v", err)
	}
}

func TestAuthorize_ZeroThresholdDisablesApprovalRule(t *testing.T) {
	gc := GateContext{
		Balance: decimal.NewFromInt(20000),
		Policy:  Policy{AllowCheckoutWithDebt: true},
	}
	if err := Authorize(ActionCheckout, StateInHouse, gc); err != nil {
		t.Fatalf("expected checkout without threshold configured, got %v", err)
	}
}

func TestAuthorize_RejectsUnavailableAction(t *testing.T) {
	if err := Authorize(ActionCheckIn, StateVacant, GateContext{}); !errors.Is(err, ErrActionNotAllowed) {
		t.Fatalf("expected ErrActionNotAllowed, got %v", err)
	}
	if err := Authorize(ActionCheckIn, StateArrivingEarly, GateContext{}); !errors.Is(err, ErrActionNotAllowed) {
		t.Fatalf("check_in before opening hours must be refused, got %v", err)
	}
}
