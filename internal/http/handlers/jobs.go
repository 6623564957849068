package handlers

import (
	"net/http"

	"smartstock/internal/demoreset"
)

// TriggerDemoReset starts a demo reset run, or reports the one in flight.
func (a *App) TriggerDemoReset(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Reset.Trigger(r.Context())
	if err != nil {
		a.backendError(w, r, err)
		return
	}
	a.json(w, http.StatusAccepted, snap)
}

// DemoResetStatus reports the poll controller's current snapshot. A fresh
// controller performs the active-run check first, so opening the reset view
// immediately reflects a run started elsewhere.
func (a *App) DemoResetStatus(w http.ResponseWriter, r *http.Request) {
	if a.Reset.Snapshot().State == demoreset.StateIdle {
		snap, err := a.Reset.Check(r.Context())
		if err != nil {
			a.backendError(w, r, err)
			return
		}
		a.json(w, http.StatusOK, snap)
		return
	}
	a.json(w, http.StatusOK, a.Reset.Snapshot())
}
