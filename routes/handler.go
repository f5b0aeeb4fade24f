// Package routes contains the HTTP surface: the auth gate, the browser
// pages, and the JSON API.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidserve/catalog"
	"vidserve/config"
	"vidserve/encoder"
	"vidserve/history"
	"vidserve/namespace"
	"vidserve/token"
)

// CredentialValidator is the narrow capability the login handlers need. The
// concrete backing store is injected so it can be swapped without touching
// the gate or the handlers.
type CredentialValidator interface {
	Validate(identity, secret string) bool
}

// Handler carries the injected collaborators for every route.
type Handler struct {
	cfg    *config.Config
	creds  CredentialValidator
	tokens *token.Service
	ns     *namespace.Manager
	orch   *encoder.Orchestrator
	cat    *catalog.Service
	hist   *history.Store
}

// New wires a Handler. hist may be nil.
func New(cfg *config.Config, creds CredentialValidator, tokens *token.Service, ns *namespace.Manager, orch *encoder.Orchestrator, cat *catalog.Service, hist *history.Store) *Handler {
	return &Handler{
		cfg:    cfg,
		creds:  creds,
		tokens: tokens,
		ns:     ns,
		orch:   orch,
		cat:    cat,
		hist:   hist,
	}
}

// Router builds the mux with the auth gate applied before every handler.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(h.authGate)

	r.HandleFunc("/login", h.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/upload", h.Upload).Methods(http.MethodPost)
	r.HandleFunc("/outputs/{identity}/{filename}", h.Download).Methods(http.MethodGet)

	r.HandleFunc("/api/login", h.APILogin).Methods(http.MethodPost)
	r.HandleFunc("/api/upload", h.APIUpload).Methods(http.MethodPost)
	r.HandleFunc("/api/videos", h.APIVideos).Methods(http.MethodGet)
	r.HandleFunc("/api/videos/{filename}", h.APIVideo).Methods(http.MethodGet)
	r.HandleFunc("/api/history", h.APIHistory).Methods(http.MethodGet)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/version", h.Version).Methods(http.MethodGet)

	return r
}
