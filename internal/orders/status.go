// Package orders holds the order lifecycle rules the dashboard enforces
// before any update reaches the backend.
package orders

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// allowedTargets maps each status to the set of statuses it may move to.
// Every status may "move" to itself; a no-op edit is always legal.
var allowedTargets = map[Status]map[Status]bool{
	StatusPending:   {StatusPending: true, StatusApproved: true, StatusCancelled: true},
	StatusApproved:  {StatusApproved: true, StatusShipped: true, StatusCancelled: true},
	StatusShipped:   {StatusShipped: true, StatusDelivered: true},
	StatusDelivered: {StatusDelivered: true},
	StatusCancelled: {StatusCancelled: true},
}

// AllowedTargets returns the statuses an order may transition to from the
// given status, including the status itself. Unknown statuses map to
// themselves only.
func AllowedTargets(from Status) []Status {
	targets, ok := allowedTargets[from]
	if !ok {
		return []Status{from}
	}
	out := make([]Status, 0, len(targets))
	for _, s := range []Status{StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled} {
		if targets[s] {
			out = append(out, s)
		}
	}
	return out
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to Status) bool {
	targets, ok := allowedTargets[from]
	if !ok {
		return from == to
	}
	return targets[to]
}

// Terminal reports whether no status other than itself is reachable.
func Terminal(s Status) bool {
	targets, ok := allowedTargets[s]
	if !ok {
		return true
	}
	return len(targets) == 1 && targets[s]
}

// QuantityEditable reports whether the order quantity may still change.
// Once an order is shipped the quantity is fixed.
func QuantityEditable(s Status) bool {
	return s == StatusPending || s == StatusApproved
}
