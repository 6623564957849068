package orders

import "fmt"

// InvalidTransitionError rejects a status change outside the lifecycle table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("orders: cannot move order from %q to %q", e.From, e.To)
}

// QuantityLockedError rejects a quantity edit on an order whose quantity is
// no longer editable.
type QuantityLockedError struct {
	Status Status
}

func (e *QuantityLockedError) Error() string {
	return fmt.Sprintf("orders: quantity is locked for %q orders", e.Status)
}

// InvalidQuantityError rejects a non-positive quantity.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("orders: quantity must be at least 1, got %d", e.Quantity)
}

// Change is the proposed edit against an order's current state.
type Change struct {
	CurrentStatus    Status
	ProposedStatus   Status
	CurrentQuantity  int
	ProposedQuantity int
}

// Delta is the minimal set of fields that actually differ. A zero Delta
// means the edit is a no-op and the caller must skip the backend call.
type Delta struct {
	Status   *Status
	Quantity *int
}

// Empty reports whether nothing changed.
func (d Delta) Empty() bool {
	return d.Status == nil && d.Quantity == nil
}

// Validate decides whether the proposed change is legal and returns the
// fields that differ from the current values. It is a pure decision over the
// given fields; authorization and concurrent-edit conflicts belong to the
// backend.
func Validate(change Change) (Delta, error) {
	if change.ProposedQuantity < 1 {
		return Delta{}, &InvalidQuantityError{Quantity: change.ProposedQuantity}
	}
	if !CanTransition(change.CurrentStatus, change.ProposedStatus) {
		return Delta{}, &InvalidTransitionError{From: change.CurrentStatus, To: change.ProposedStatus}
	}
	if change.ProposedQuantity != change.CurrentQuantity && !QuantityEditable(change.CurrentStatus) {
		return Delta{}, &QuantityLockedError{Status: change.CurrentStatus}
	}

	var delta Delta
	if change.ProposedStatus != change.CurrentStatus {
		status := change.ProposedStatus
		delta.Status = &status
	}
	if change.ProposedQuantity != change.CurrentQuantity {
		quantity := change.ProposedQuantity
		delta.Quantity = &quantity
	}
	return delta, nil
}
