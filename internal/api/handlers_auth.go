package api

import (
	"net/http"

	"github.com/soaringjerry/klausurarchiv/internal/middleware"
	"github.com/soaringjerry/klausurarchiv/internal/models"
	"github.com/soaringjerry/klausurarchiv/internal/utils"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := rt.decode(w, r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	u, err := rt.auth.Register(req.Username, req.Password)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.count("register")
	writeJSON(w, http.StatusCreated, map[string]any{
		"user":    u,
		"message": utils.T(middleware.LocaleFromContext(r.Context()), "auth.registered"),
	})
}

// POST /api/auth/login opens a fresh session with the initial wizard state.
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := rt.decode(w, r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	u, err := rt.auth.Login(req.Username, req.Password)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	sess := rt.sessions.Open(u.ID)
	tok, err := rt.tokens.Sign(u.ID, sess.ID, string(u.Role))
	if err != nil {
		rt.sessions.Close(sess.ID)
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":   tok,
		"user":    u,
		"message": utils.T(middleware.LocaleFromContext(r.Context()), "auth.welcome", u.Username),
	})
}

// POST /api/auth/logout drops the session and its navigation state.
func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	rt.sessions.Close(currentSession(r).session.ID)
	writeMessage(w, r, "auth.logged_out")
}

// GET /api/me
func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	sc := currentSession(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":     sc.user,
		"is_admin": sc.user.Role == models.RoleAdministrator,
	})
}
