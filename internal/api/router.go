package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/soaringjerry/klausurarchiv/internal/db"
	"github.com/soaringjerry/klausurarchiv/internal/metrics"
	"github.com/soaringjerry/klausurarchiv/internal/middleware"
	"github.com/soaringjerry/klausurarchiv/internal/models"
	"github.com/soaringjerry/klausurarchiv/internal/services"
	"github.com/soaringjerry/klausurarchiv/internal/utils"
)

const maxBodyBytes = 12 << 20

type Options struct {
	Tokens    *middleware.TokenIssuer
	Favorites *services.FavoritesService
	Tips      *services.TipsService
	OCR       services.TextExtractor
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	StaticDir string
	Commit    string
	BuildTime string
}

type Router struct {
	store      Store
	auth       *services.AuthService
	moderation *services.ModerationService
	insights   *services.InsightsService
	sessions   *services.SessionManager
	favorites  *services.FavoritesService
	tips       *services.TipsService
	tokens     *middleware.TokenIssuer
	metrics    *metrics.Metrics
	validate   *validator.Validate
	logger     *zap.Logger
	opts       Options
}

func NewRouter(store Store, auth *services.AuthService, opts Options) *Router {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Tokens == nil {
		opts.Tokens = middleware.NewTokenIssuer("", 0)
	}
	if opts.Tips == nil {
		opts.Tips = services.NewTipsService(nil, opts.Logger)
	}
	if opts.Favorites == nil {
		// A memory-backed store cannot fail to load.
		opts.Favorites, _ = services.NewFavoritesService(context.Background(), db.NewMemoryPrefs(), opts.Logger)
	}
	return &Router{
		store:      store,
		auth:       auth,
		moderation: services.NewModerationService(store, opts.OCR),
		insights:   services.NewInsightsService(store),
		sessions:   services.NewSessionManager(),
		favorites:  opts.Favorites,
		tips:       opts.Tips,
		tokens:     opts.Tokens,
		metrics:    opts.Metrics,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     opts.Logger,
		opts:       opts,
	}
}

// Handler builds the full middleware chain and route table.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	var observers []middleware.RequestObserver
	if rt.metrics != nil {
		observers = append(observers, rt.metrics.ObserveRequest)
	}
	r.Use(middleware.RequestLogger(rt.logger, observers...))
	r.Use(middleware.CORS)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.NoStore)
	r.Use(middleware.LocaleMiddleware)
	r.Use(rt.tokens.WithAuth)

	r.Get("/health", rt.handleHealth)
	r.Get("/version", rt.handleVersion)
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", rt.handleRegister)
		api.Post("/auth/login", rt.handleLogin)
		api.Get("/preferences/theme", rt.handleGetTheme)
		api.Post("/preferences/theme/toggle", rt.handleToggleTheme)

		api.Group(func(s chi.Router) {
			s.Use(middleware.RequireAuth, rt.requireSession)

			s.Post("/auth/logout", rt.handleLogout)
			s.Get("/me", rt.handleMe)

			s.Get("/nav", rt.handleNav)
			s.Post("/nav/subject", rt.handleNavSubject)
			s.Post("/nav/teacher", rt.handleNavTeacher)
			s.Post("/nav/back", rt.handleNavBack)
			s.Post("/nav/reset", rt.handleNavReset)
			s.Post("/nav/search", rt.handleNavSearch)

			s.Post("/exams", rt.handleUpload)
			s.Post("/exams/{id}/view", rt.handleView)
			s.Post("/exams/{id}/download", rt.handleDownload)
			s.Post("/exams/{id}/tags", rt.handleAddTag)
			s.Post("/exams/{id}/ratings", rt.handleRate)
			s.Post("/exams/{id}/report", rt.handleReport)
			s.Post("/exams/{id}/tips", rt.handleTips)

			s.Get("/favorites", rt.handleFavorites)
			s.Post("/favorites/{id}/toggle", rt.handleToggleFavorite)
			s.Get("/leaderboard", rt.handleLeaderboard)

			s.Route("/admin", func(a chi.Router) {
				a.Get("/dashboard", rt.handleDashboard)
				a.Get("/export.csv", rt.handleExportCSV)
				a.Get("/audit", rt.handleAudit)
				a.Post("/exams/{id}/approve", rt.handleApproveExam)
				a.Delete("/exams/{id}", rt.handleDeleteExam)
				a.Post("/exams/{id}/clear-report", rt.handleClearReport)
				a.Post("/users/{id}/approve", rt.handleApproveUser)
			})
		})
	})

	if rt.opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(rt.opts.StaticDir)))
	}
	return r
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"name":       "Klausurarchiv API",
		"locale":     locale,
		"msg":        utils.T(locale, "health.ok"),
		"commit":     rt.opts.Commit,
		"build_time": rt.opts.BuildTime,
	})
}

func (rt *Router) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"commit":     rt.opts.Commit,
		"build_time": rt.opts.BuildTime,
	})
}

type sessionCtxKey struct{}

type sessionContext struct {
	session *services.Session
	user    models.User
}

// requireSession resolves the token's session and reloads the user so role,
// approval and karma are always current.
func (rt *Router) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.ClaimsFromContext(r.Context())
		sess, ok := rt.sessions.Get(claims.SID)
		if !ok || sess.UserID != claims.UID {
			middleware.WriteUnauthenticated(w, r)
			return
		}
		user, ok := rt.store.GetUser(claims.UID)
		if !ok || !user.IsApproved {
			middleware.WriteUnauthenticated(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey{}, &sessionContext{session: sess, user: user})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentSession(r *http.Request) *sessionContext {
	sc, _ := r.Context().Value(sessionCtxKey{}).(*sessionContext)
	return sc
}

func (rt *Router) count(action string) {
	if rt.metrics != nil {
		rt.metrics.Action(action)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage answers {"ok":true,"message":...} with a localized text.
func writeMessage(w http.ResponseWriter, r *http.Request, key string, args ...any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": utils.T(middleware.LocaleFromContext(r.Context()), key, args...),
	})
}

func (rt *Router) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return services.NewInvalidError("invalid json: " + err.Error())
	}
	if err := rt.validate.Struct(dst); err != nil {
		return services.NewInvalidError(err.Error())
	}
	return nil
}
