package routes

import (
	"net/http"

	"vidserve/history"
	"vidserve/logger"
)

// APIHistory lists the caller's encode outcomes, newest first.
func (h *Handler) APIHistory(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())

	records := []history.Record{}
	if h.hist != nil {
		var err error
		records, err = h.hist.List(identity)
		if err != nil {
			logger.Errorf("Failed to list history for %s: %v", identity, err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to list history")
			return
		}
		if records == nil {
			records = []history.Record{}
		}
	}

	writeJSON(w, http.StatusOK, records)
}
