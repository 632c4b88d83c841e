package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soaringjerry/klausurarchiv/internal/middleware"
	"github.com/soaringjerry/klausurarchiv/internal/models"
	"github.com/soaringjerry/klausurarchiv/internal/utils"
)

// GET /api/preferences/theme
func (rt *Router) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"theme": rt.favorites.Theme()})
}

// POST /api/preferences/theme/toggle
func (rt *Router) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := rt.favorites.ToggleTheme(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// GET /api/favorites lists favorite ids plus the public exams they resolve to.
func (rt *Router) handleFavorites(w http.ResponseWriter, r *http.Request) {
	ids := rt.favorites.Favorites()
	exams := make([]models.Exam, 0, len(ids))
	for _, id := range ids {
		if e, ok := rt.store.GetExam(id); ok && e.IsApproved {
			exams = append(exams, e)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"favorites": ids,
		"exams":     rt.examViews(currentSession(r).session, exams),
	})
}

// POST /api/favorites/{id}/toggle
func (rt *Router) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	added, err := rt.favorites.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	key := "favorites.removed"
	if added {
		key = "favorites.added"
	}
	rt.count("favorite")
	writeJSON(w, http.StatusOK, map[string]any{
		"favorite": added,
		"message":  utils.T(middleware.LocaleFromContext(r.Context()), key),
	})
}
