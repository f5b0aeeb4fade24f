package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidserve/logger"
)

// Download serves a finished output. The path names the owning identity;
// requests for another identity's namespace are refused regardless of the
// caller holding a valid token.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner := vars["identity"]
	filename := vars["filename"]

	identity := IdentityFrom(r.Context())
	if identity != owner {
		logger.Warnf("Identity %s attempted to access namespace of %s", identity, owner)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	asset, err := h.cat.Get(identity, filename)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, asset.Path)
}
