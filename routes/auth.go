package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"vidserve/logger"
)

type apiLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type apiLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// Login validates browser credentials, issues the session cookie and
// redirects to the catalog.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if !h.creds.Validate(username, password) {
		logger.Warnf("Failed login attempt for %q", username)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	tok, err := h.tokens.Issue(username)
	if err != nil {
		logger.Errorf("Failed to issue token for %s: %v", username, err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    tok,
		Path:     "/",
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	logger.Infof("User %s logged in", username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookie. Token validity is purely
// signature+expiry, so there is nothing server-side to revoke.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// APILogin validates credentials from a JSON body and returns a bearer
// token.
func (h *Handler) APILogin(w http.ResponseWriter, r *http.Request) {
	var req apiLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.creds.Validate(req.Username, req.Password) {
		logger.Warnf("Failed API login attempt for %q", req.Username)
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tok, err := h.tokens.Issue(req.Username)
	if err != nil {
		logger.Errorf("Failed to issue token for %s: %v", req.Username, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, apiLoginResponse{
		Token:     tok,
		ExpiresIn: int(h.tokens.TTL().Seconds()),
	})
}
