package demoreset

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"smartstock/internal/backend"
)

// DefaultPollInterval is the cadence of run status checks.
const DefaultPollInterval = 3 * time.Second

// JobAPI is the slice of the backend client the controller needs.
// *backend.Client satisfies it.
type JobAPI interface {
	TriggerDemoReset(ctx context.Context) (*backend.TriggerResult, error)
	ActiveDemoResetRun(ctx context.Context) (*backend.JobRun, error)
	DemoResetRun(ctx context.Context, runID int64) (*backend.JobRun, error)
}

// State is the controller's observable lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateChecking    State = "checking"
	StateNoActiveRun State = "no_active_run"
	StatePolling     State = "polling"
	StateTerminal    State = "terminal"
)

// Snapshot is the controller state exposed to the UI.
type Snapshot struct {
	State    State           `json:"state"`
	Run      *backend.JobRun `json:"run,omitempty"`
	Progress int             `json:"progress"`
	Outcome  Outcome         `json:"outcome,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// Options configures a Controller.
type Options struct {
	Interval time.Duration
	Logger   *zerolog.Logger
}

// Controller triggers the demo-reset job and observes its run until the job
// system reports a terminal state. It never mutates the run itself, and it
// keeps at most one polling timer alive at a time.
type Controller struct {
	api      JobAPI
	interval time.Duration
	logger   zerolog.Logger

	mu         sync.Mutex
	state      State
	run        *backend.JobRun
	cancelPoll context.CancelFunc
	wg         sync.WaitGroup
}

// NewController builds a controller in the Idle state.
func NewController(api JobAPI, opts Options) *Controller {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Controller{
		api:      api,
		interval: interval,
		logger:   logger,
		state:    StateIdle,
	}
}

// Snapshot returns the current observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{State: c.state}
	if c.run != nil {
		run := *c.run
		snap.Run = &run
		snap.Progress = Progress(run.LifeCycleState)
	}
	if c.state == StateTerminal && c.run != nil {
		snap.Outcome = ClassifyOutcome(c.run.LifeCycleState, c.run.ResultState)
		snap.Message = outcomeMessage(snap.Outcome)
	}
	return snap
}

// Check performs the one-shot "is there an active run" query. Called when the
// hosting view opens. A controller that is already polling keeps its state.
func (c *Controller) Check(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.state == StatePolling {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
	c.state = StateChecking
	c.mu.Unlock()

	run, err := c.api.ActiveDemoResetRun(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateIdle
		return c.snapshotLocked(), err
	}
	switch {
	case run == nil:
		c.state = StateNoActiveRun
		c.run = nil
	case RunActive(run.LifeCycleState):
		c.run = run
		c.startPollingLocked()
	default:
		c.run = run
		c.state = StateTerminal
	}
	return c.snapshotLocked(), nil
}

// Trigger starts a new run unless one is already active. Triggering while a
// run is in flight is a no-op that returns the current snapshot, so repeated
// triggers never create additional timers. After a terminal run it starts a
// fresh run, discarding the prior record.
func (c *Controller) Trigger(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.state == StatePolling {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	result, err := c.api.TriggerDemoReset(ctx)
	if err != nil {
		return c.Snapshot(), err
	}

	// One immediate fetch so the UI shows real state before the first tick.
	run, fetchErr := c.api.DemoResetRun(ctx, result.RunID)
	if fetchErr != nil {
		c.logger.Warn().Err(fetchErr).Int64("run_id", result.RunID).Msg("demoreset: initial run fetch failed")
		run = &backend.JobRun{RunID: result.RunID, JobID: result.JobID, LifeCycleState: LifeCyclePending}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.run = run
	if RunActive(run.LifeCycleState) {
		c.startPollingLocked()
	} else {
		c.stopPollingLocked()
		c.state = StateTerminal
	}
	c.logger.Info().Int64("run_id", run.RunID).Str("life_cycle_state", run.LifeCycleState).Msg("demoreset: run triggered")
	return c.snapshotLocked(), nil
}

// Stop cancels the polling timer. The backend job keeps running; only the
// observation stops.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopPollingLocked()
	c.mu.Unlock()
	c.wg.Wait()
}

// startPollingLocked replaces any scheduled timer with a fresh poll loop.
// Cancelling first keeps the single-timer invariant.
func (c *Controller) startPollingLocked() {
	c.stopPollingLocked()
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelPoll = cancel
	c.state = StatePolling
	runID := c.run.RunID
	c.wg.Add(1)
	go c.pollLoop(ctx, runID)
}

func (c *Controller) stopPollingLocked() {
	if c.cancelPoll != nil {
		c.cancelPoll()
		c.cancelPoll = nil
	}
}

// pollLoop re-fetches the run every interval until it leaves the active set.
// Poll errors are logged and swallowed; the next tick retries.
func (c *Controller) pollLoop(ctx context.Context, runID int64) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run, err := c.api.DemoResetRun(ctx, runID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error().Err(err).Int64("run_id", runID).Msg("demoreset: poll failed")
				continue
			}

			c.mu.Lock()
			if ctx.Err() != nil {
				// A newer trigger replaced this loop while the fetch was in
				// flight; its result must not clobber the new run.
				c.mu.Unlock()
				return
			}
			c.run = run
			if !RunActive(run.LifeCycleState) {
				c.state = StateTerminal
				c.stopPollingLocked()
				c.mu.Unlock()
				c.logger.Info().
					Int64("run_id", run.RunID).
					Str("result_state", run.ResultState).
					Msg("demoreset: run finished")
				return
			}
			c.mu.Unlock()
		}
	}
}

func outcomeMessage(o Outcome) string {
	switch o {
	case OutcomeSuccess:
		return "Demo data reset completed successfully."
	case OutcomeFailure:
		return "Demo data reset failed."
	case OutcomeWarning:
		return "Demo data reset was canceled."
	default:
		return "Demo data reset finished with an unknown result."
	}
}
