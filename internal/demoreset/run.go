// Package demoreset drives the demo-data reset workflow: trigger a backend
// job run once, then poll its state on a fixed cadence until the job system
// reports a terminal state. The run itself is owned by the external job
// system; this package only observes it.
package demoreset

// Run life-cycle states reported by the external job system.
const (
	LifeCyclePending    = "PENDING"
	LifeCycleQueued     = "QUEUED"
	LifeCycleRunning    = "RUNNING"
	LifeCycleBlocked    = "BLOCKED"
	LifeCycleTerminated = "TERMINATED"
)

// Result states, populated only once a run is TERMINATED.
const (
	ResultSuccess  = "SUCCESS"
	ResultFailed   = "FAILED"
	ResultTimedOut = "TIMEDOUT"
	ResultCanceled = "CANCELED"
)

// activeLifeCycles are the states in which a run is still in flight.
var activeLifeCycles = map[string]bool{
	LifeCyclePending: true,
	LifeCycleQueued:  true,
	LifeCycleRunning: true,
	LifeCycleBlocked: true,
}

// RunActive reports whether the life-cycle state means the run is in flight.
func RunActive(lifeCycleState string) bool {
	return activeLifeCycles[lifeCycleState]
}

// Progress maps a run's state to a deterministic percentage for display.
func Progress(lifeCycleState string) int {
	switch lifeCycleState {
	case LifeCyclePending, LifeCycleQueued:
		return 10
	case LifeCycleBlocked:
		return 20
	case LifeCycleRunning:
		return 50
	case LifeCycleTerminated:
		return 100
	default:
		return 0
	}
}

// Outcome classifies a terminal run for display purposes.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeWarning Outcome = "warning"
	OutcomeUnknown Outcome = "unknown"
)

// ClassifyOutcome maps a terminated run's result state to its display class.
func ClassifyOutcome(lifeCycleState, resultState string) Outcome {
	if lifeCycleState != LifeCycleTerminated {
		return OutcomeUnknown
	}
	switch resultState {
	case ResultSuccess:
		return OutcomeSuccess
	case ResultFailed, ResultTimedOut:
		return OutcomeFailure
	case ResultCanceled:
		return OutcomeWarning
	default:
		return OutcomeUnknown
	}
}
