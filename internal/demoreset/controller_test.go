package demoreset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"smartstock/internal/backend"
)

type fakeJobAPI struct {
	mu           sync.Mutex
	triggerCalls int32
	fetchCalls   int32
	active       *backend.JobRun
	activeErr    error
	fetchScript  []fetchStep
	nextRunID    int64
}

type fetchStep struct {
	run *backend.JobRun
	err error
}

func (f *fakeJobAPI) TriggerDemoReset(ctx context.Context) (*backend.TriggerResult, error) {
	atomic.AddInt32(&f.triggerCalls, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextRunID++
	return &backend.TriggerResult{RunID: f.nextRunID, JobID: 99, Message: "triggered"}, nil
}

func (f *fakeJobAPI) ActiveDemoResetRun(ctx context.Context) (*backend.JobRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.activeErr
}

func (f *fakeJobAPI) DemoResetRun(ctx context.Context, runID int64) (*backend.JobRun, error) {
	atomic.AddInt32(&f.fetchCalls, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.fetchScript) == 0 {
		return &backend.JobRun{RunID: runID, JobID: 99, LifeCycleState: LifeCycleRunning}, nil
	}
	step := f.fetchScript[0]
	if len(f.fetchScript) > 1 {
		f.fetchScript = f.fetchScript[1:]
	}
	if step.err != nil {
		return nil, step.err
	}
	run := *step.run
	run.RunID = runID
	return &run, nil
}

func (f *fakeJobAPI) fetches() int32 {
	return atomic.LoadInt32(&f.fetchCalls)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func newTestController(api JobAPI) *Controller {
	return NewController(api, Options{Interval: 5 * time.Millisecond})
}

func TestCheckWithNoActiveRun(t *testing.T) {
	api := &fakeJobAPI{}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	snap, err := ctrl.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if snap.State != StateNoActiveRun {
		t.Fatalf("state = %s, want no_active_run", snap.State)
	}
	if snap.Run != nil {
		t.Fatalf("run = %#v, want nil", snap.Run)
	}
}

func TestCheckFindsActiveRunAndPollsToTerminal(t *testing.T) {
	api := &fakeJobAPI{
		active: &backend.JobRun{RunID: 11, JobID: 99, LifeCycleState: LifeCycleRunning},
		fetchScript: []fetchStep{
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleRunning}},
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleTerminated, ResultState: ResultSuccess}},
		},
	}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	snap, err := ctrl.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if snap.State != StatePolling {
		t.Fatalf("state = %s, want polling", snap.State)
	}
	if snap.Progress != 50 {
		t.Fatalf("progress = %d, want 50 for RUNNING", snap.Progress)
	}

	waitFor(t, func() bool { return ctrl.Snapshot().State == StateTerminal }, "terminal state")
	final := ctrl.Snapshot()
	if final.Progress != 100 {
		t.Fatalf("progress = %d, want 100", final.Progress)
	}
	if final.Outcome != OutcomeSuccess {
		t.Fatalf("outcome = %s, want success", final.Outcome)
	}
}

func TestCheckWithTerminatedRunSkipsPolling(t *testing.T) {
	api := &fakeJobAPI{
		active: &backend.JobRun{RunID: 11, JobID: 99, LifeCycleState: LifeCycleTerminated, ResultState: ResultSuccess},
	}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	snap, err := ctrl.Check(context.Background())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if snap.State != StateTerminal {
		t.Fatalf("state = %s, want terminal", snap.State)
	}
	time.Sleep(30 * time.Millisecond)
	if api.fetches() != 0 {
		t.Fatalf("fetches = %d, want 0 when run was already terminal", api.fetches())
	}
}

func TestCheckErrorReturnsToIdle(t *testing.T) {
	api := &fakeJobAPI{activeErr: errors.New("boom")}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	snap, err := ctrl.Check(context.Background())
	if err == nil {
		t.Fatalf("expected error from Check")
	}
	if snap.State != StateIdle {
		t.Fatalf("state = %s, want idle after failed check", snap.State)
	}
}

func TestTriggerPollsUntilFailure(t *testing.T) {
	api := &fakeJobAPI{
		fetchScript: []fetchStep{
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleRunning}},
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleTerminated, ResultState: ResultFailed, StateMessage: "task crashed"}},
		},
	}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	snap, err := ctrl.Trigger(context.Background())
	if err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	if snap.State != StatePolling || snap.Progress != 50 {
		t.Fatalf("snapshot = %+v, want polling at 50", snap)
	}

	waitFor(t, func() bool { return ctrl.Snapshot().State == StateTerminal }, "terminal state")
	final := ctrl.Snapshot()
	if final.Outcome != OutcomeFailure {
		t.Fatalf("outcome = %s, want failure", final.Outcome)
	}
	if final.Message != "Demo data reset failed." {
		t.Fatalf("message = %q", final.Message)
	}
	if final.Run.StateMessage != "task crashed" {
		t.Fatalf("state message = %q, want backend diagnostic", final.Run.StateMessage)
	}
}

func TestRepeatedTriggerDoesNotStartSecondRun(t *testing.T) {
	api := &fakeJobAPI{}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	if _, err := ctrl.Trigger(context.Background()); err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		snap, err := ctrl.Trigger(context.Background())
		if err != nil {
			t.Fatalf("repeat Trigger returned error: %v", err)
		}
		if snap.State != StatePolling {
			t.Fatalf("state = %s, want polling", snap.State)
		}
	}
	if got := atomic.LoadInt32(&api.triggerCalls); got != 1 {
		t.Fatalf("trigger calls = %d, want 1 while a run is active", got)
	}
}

func TestTriggerAfterTerminalStartsFreshRun(t *testing.T) {
	api := &fakeJobAPI{
		fetchScript: []fetchStep{
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleTerminated, ResultState: ResultSuccess}},
		},
	}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	snap, err := ctrl.Trigger(context.Background())
	if err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	if snap.State != StateTerminal {
		t.Fatalf("state = %s, want terminal from immediate fetch", snap.State)
	}
	firstRunID := snap.Run.RunID

	snap, err = ctrl.Trigger(context.Background())
	if err != nil {
		t.Fatalf("second Trigger returned error: %v", err)
	}
	if got := atomic.LoadInt32(&api.triggerCalls); got != 2 {
		t.Fatalf("trigger calls = %d, want 2 after a terminal run", got)
	}
	if snap.Run.RunID == firstRunID {
		t.Fatalf("run id = %d, want a fresh run", snap.Run.RunID)
	}
}

func TestPollingStopsAfterTerminalState(t *testing.T) {
	api := &fakeJobAPI{
		fetchScript: []fetchStep{
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleRunning}},
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleTerminated, ResultState: ResultSuccess}},
		},
	}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	if _, err := ctrl.Trigger(context.Background()); err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	waitFor(t, func() bool { return ctrl.Snapshot().State == StateTerminal }, "terminal state")

	settled := api.fetches()
	time.Sleep(50 * time.Millisecond)
	if got := api.fetches(); got != settled {
		t.Fatalf("fetches kept increasing after terminal state: %d -> %d", settled, got)
	}
}

func TestPollErrorsAreSwallowed(t *testing.T) {
	api := &fakeJobAPI{
		fetchScript: []fetchStep{
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleRunning}},
			{err: errors.New("transient network blip")},
			{err: errors.New("another blip")},
			{run: &backend.JobRun{JobID: 99, LifeCycleState: LifeCycleTerminated, ResultState: ResultSuccess}},
		},
	}
	ctrl := newTestController(api)
	defer ctrl.Stop()

	if _, err := ctrl.Trigger(context.Background()); err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	waitFor(t, func() bool { return ctrl.Snapshot().State == StateTerminal }, "terminal state despite poll errors")
	if ctrl.Snapshot().Outcome != OutcomeSuccess {
		t.Fatalf("outcome = %s, want success", ctrl.Snapshot().Outcome)
	}
}

func TestStopCancelsTimerWithoutTouchingRun(t *testing.T) {
	api := &fakeJobAPI{}
	ctrl := newTestController(api)

	if _, err := ctrl.Trigger(context.Background()); err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	waitFor(t, func() bool { return api.fetches() > 1 }, "polling to begin")
	ctrl.Stop()

	settled := api.fetches()
	time.Sleep(50 * time.Millisecond)
	if got := api.fetches(); got != settled {
		t.Fatalf("fetches kept increasing after Stop: %d -> %d", settled, got)
	}
	// The run record survives; only observation stopped.
	if ctrl.Snapshot().Run == nil {
		t.Fatalf("run record discarded by Stop")
	}
}
