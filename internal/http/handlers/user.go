package handlers

import "net/http"

// Me proxies the current user used to prefill the "requested by" field.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Backend.CurrentUser(r.Context())
	if err != nil {
		a.backendError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, user)
}
