package app

import (
	"net/http"

	"github.com/louisbranch/lectern/internal/settings"
)

// handleGetSettings returns the caller's display settings merged over
// defaults. Anonymous callers get the defaults.
func (h *handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeJSON(w, http.StatusOK, settings.Defaults())
		return
	}

	loaded, err := h.deps.Settings.Load(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loaded)
}

// handlePutSettings replaces the caller's stored display settings. The body
// is merged over defaults before storing so partial payloads never blank
// unspecified fields.
func (h *handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	principal := h.principal(r)
	if principal.Anonymous() {
		writeError(w, errUnauthenticated)
		return
	}

	merged := settings.Defaults()
	if !decodeBody(w, r, &merged) {
		return
	}
	if err := h.deps.Settings.Save(r.Context(), principal.UserID, merged); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}
