package room

import "testing"

func TestParseManualStatus(t *testing.T) {
	for _, s := range []string{"none", "cleaning", "maintenance", "out_of_order"} {
		if _, err := ParseManualStatus(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseManualStatus("ooo"); err == nil {
		t.Fatalf("expected unknown manual status to fail")
	}
}

func TestManualStatusOverriding(t *testing.T) {
	if ManualNone.Overriding() {
		t.Fatalf("none must not override lifecycle state")
	}
	for _, m := range []ManualStatus{ManualCleaning, ManualMaintenance, ManualOutOfOrder} {
		if !m.Overriding() {
			t.Fatalf("%s must override lifecycle state", m)
		}
	}
}
