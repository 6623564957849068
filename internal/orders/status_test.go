package orders

import "testing"

var allStatuses = []Status{StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled}

func TestNoOpTransitionIsAlwaysAllowed(t *testing.T) {
	for _, s := range allStatuses {
		if !CanTransition(s, s) {
			t.Fatalf("CanTransition(%s, %s) = false, want true", s, s)
		}
	}
	// Unknown statuses still allow the no-op.
	if !CanTransition("archived", "archived") {
		t.Fatalf("unknown status should be able to stay put")
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from Status
		want []Status
	}{
		{StatusPending, []Status{StatusPending, StatusApproved, StatusCancelled}},
		{StatusApproved, []Status{StatusApproved, StatusShipped, StatusCancelled}},
		{StatusShipped, []Status{StatusShipped, StatusDelivered}},
		{StatusDelivered, []Status{StatusDelivered}},
		{StatusCancelled, []Status{StatusCancelled}},
	}
	for _, tt := range tests {
		got := AllowedTargets(tt.from)
		if len(got) != len(tt.want) {
			t.Fatalf("AllowedTargets(%s) = %v, want %v", tt.from, got, tt.want)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Fatalf("AllowedTargets(%s) = %v, want %v", tt.from, got, tt.want)
			}
		}
		// Everything outside the allowed set must be rejected.
		for _, to := range allStatuses {
			allowed := false
			for _, w := range tt.want {
				if w == to {
					allowed = true
				}
			}
			if CanTransition(tt.from, to) != allowed {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tt.from, to, !allowed, allowed)
			}
		}
	}
}

func TestUnknownStatusMapsToItselfOnly(t *testing.T) {
	got := AllowedTargets("archived")
	if len(got) != 1 || got[0] != Status("archived") {
		t.Fatalf("AllowedTargets(archived) = %v, want [archived]", got)
	}
	if CanTransition("archived", StatusPending) {
		t.Fatalf("unknown status must not transition anywhere else")
	}
}

func TestTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusApproved, false},
		{StatusShipped, false},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{Status("archived"), true},
	}
	for _, tt := range tests {
		if got := Terminal(tt.status); got != tt.want {
			t.Fatalf("Terminal(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestQuantityEditable(t *testing.T) {
	for _, s := range allStatuses {
		want := s == StatusPending || s == StatusApproved
		if got := QuantityEditable(s); got != want {
			t.Fatalf("QuantityEditable(%s) = %v, want %v", s, got, want)
		}
	}
}
