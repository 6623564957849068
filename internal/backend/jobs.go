package backend

import (
	"context"
	"fmt"
	"net/http"
)

// JobRun is the backend's view of a demo-reset job run. The run is owned and
// mutated by the external job system; this client only observes it.
type JobRun struct {
	RunID          int64  `json:"run_id"`
	JobID          int64  `json:"job_id"`
	LifeCycleState string `json:"life_cycle_state"`
	ResultState    string `json:"result_state,omitempty"`
	StateMessage   string `json:"state_message,omitempty"`
	RunPageURL     string `json:"run_page_url,omitempty"`
}

// TriggerResult is the response of POST /jobs/demo-reset/trigger.
type TriggerResult struct {
	RunID      int64  `json:"run_id"`
	JobID      int64  `json:"job_id"`
	Message    string `json:"message"`
	RunPageURL string `json:"run_page_url,omitempty"`
}

// TriggerDemoReset starts a new demo reset run. The backend returns the
// existing run when one is already in progress.
func (c *Client) TriggerDemoReset(ctx context.Context) (*TriggerResult, error) {
	var result TriggerResult
	if err := c.do(ctx, http.MethodPost, "/jobs/demo-reset/trigger", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ActiveDemoResetRun returns the currently active run, or nil when none is
// running. The backend encodes "no active run" as a JSON null body.
func (c *Client) ActiveDemoResetRun(ctx context.Context) (*JobRun, error) {
	var run *JobRun
	if err := c.do(ctx, http.MethodGet, "/jobs/demo-reset/active-run", nil, nil, &run); err != nil {
		return nil, err
	}
	return run, nil
}

// DemoResetRun fetches a single run by id.
func (c *Client) DemoResetRun(ctx context.Context, runID int64) (*JobRun, error) {
	var run JobRun
	path := fmt.Sprintf("/jobs/demo-reset/run/%d", runID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
