package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/soaringjerry/klausurarchiv/internal/db"
	"github.com/soaringjerry/klausurarchiv/internal/metrics"
	"github.com/soaringjerry/klausurarchiv/internal/middleware"
	"github.com/soaringjerry/klausurarchiv/internal/services"
)

type fixedGenerator struct {
	text  string
	calls int
}

func (g *fixedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return g.text, nil
}

type testServer struct {
	t       *testing.T
	store   Store
	handler http.Handler
	gen     *fixedGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := NewStore()
	auth := services.NewAuthService(store, services.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, Seed(store, auth, "admin", "password"))

	favorites, err := services.NewFavoritesService(context.Background(), db.NewMemoryPrefs(), nil)
	require.NoError(t, err)
	gen := &fixedGenerator{text: "## Tipps\n- Übungsaufgaben rechnen"}

	rt := NewRouter(store, auth, Options{
		Tokens:    middleware.NewTokenIssuer("test-secret", 0),
		Favorites: favorites,
		Tips:      services.NewTipsService(gen, nil),
		OCR:       services.SimulatedOCR{},
		Metrics:   metrics.New(),
		Commit:    "abc123",
	})
	return &testServer{t: t, store: store, handler: rt.Handler(), gen: gen}
}

func (s *testServer) request(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	rec := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[map[string]any](s.t, rec)["token"].(string)
}

// approvedStudent registers username and has the admin approve it.
func (s *testServer) approvedStudent(adminToken, username string) string {
	s.t.Helper()
	rec := s.request(http.MethodPost, "/api/auth/register", "", map[string]string{"username": username, "password": "geheim"})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decodeBody[struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}](s.t, rec).User

	rec = s.request(http.MethodPost, "/api/admin/users/"+user.ID+"/approve", adminToken, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return s.login(username, "geheim")
}

type navResponse struct {
	State    services.NavigationState `json:"state"`
	Subjects []string                 `json:"subjects"`
	Teachers []string                 `json:"teachers"`
	Exams    []struct {
		ID         string                 `json:"id"`
		IsApproved bool                   `json:"is_approved"`
		Rating     services.RatingSummary `json:"rating"`
		IsFavorite bool                   `json:"is_favorite"`
		HasRated   bool                   `json:"has_rated"`
		Tips       *string                `json:"tips"`
	} `json:"exams"`
}

func (n navResponse) ids() []string {
	out := make([]string, 0, len(n.Exams))
	for _, e := range n.Exams {
		out = append(out, e.ID)
	}
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.request(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "de", body["locale"])
	assert.Equal(t, "abc123", body["commit"])
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
}

func TestLoginAndApprovalFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "falsch"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Ungültige Anmeldedaten.", decodeBody[map[string]string](t, rec)["message"])

	rec = s.request(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "lena", "password": "geheim"})
	require.Equal(t, http.StatusCreated, rec.Code)
	reg := decodeBody[struct {
		User struct {
			ID         string `json:"id"`
			Role       string `json:"role"`
			IsApproved bool   `json:"is_approved"`
		} `json:"user"`
		Message string `json:"message"`
	}](t, rec)
	assert.Equal(t, "REGULAR", reg.User.Role)
	assert.False(t, reg.User.IsApproved)
	assert.Equal(t, "Registrierung erfolgreich! Warten auf Freischaltung.", reg.Message)

	rec = s.request(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "lena", "password": "anders"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "lena", "password": "geheim"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Account noch nicht freigeschaltet.", decodeBody[map[string]string](t, rec)["message"])

	admin := s.login("admin", "password")
	rec = s.request(http.MethodPost, "/api/admin/users/"+reg.User.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "lena", "password": "geheim"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Willkommen zurück, lena!", decodeBody[map[string]any](t, rec)["message"])
}

func TestLoginMessageFollowsAcceptLanguage(t *testing.T) {
	s := newTestServer(t)
	rec := s.request(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ghost", "password": "x"}, "Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials.", decodeBody[map[string]string](t, rec)["message"])
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
}

func TestSessionRequired(t *testing.T) {
	s := newTestServer(t)
	rec := s.request(http.MethodGet, "/api/nav", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.request(http.MethodGet, "/api/nav", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login("admin", "password")
	rec = s.request(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, me["is_admin"])

	rec = s.request(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Erfolgreich abgemeldet.", decodeBody[map[string]any](t, rec)["message"])

	rec = s.request(http.MethodGet, "/api/nav", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWizardNavigation(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "password")

	rec := s.request(http.MethodGet, "/api/nav", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	nav := decodeBody[navResponse](t, rec)
	assert.Equal(t, services.StepSubjects, nav.State.Step)
	assert.Equal(t, []string{
		"Biologie", "Chemie", "Deutsch", "Englisch", "Geografie", "Geschichte", "Informatik",
		"Kunst", "Mathematik", "Musik", "Physik", "Religion", "Sport",
	}, nav.Subjects)
	assert.Empty(t, nav.Teachers)
	assert.Len(t, nav.Exams, 20)

	rec = s.request(http.MethodPost, "/api/nav/subject", token, map[string]string{"subject": "Mathematik"})
	require.Equal(t, http.StatusOK, rec.Code)
	nav = decodeBody[navResponse](t, rec)
	assert.Equal(t, services.StepTeachers, nav.State.Step)
	assert.Equal(t, []string{"Frau Becker", "Herr Müller", "Herr Wagner"}, nav.Teachers)
	assert.Equal(t, []string{"1", "6", "11", "19"}, nav.ids())

	rec = s.request(http.MethodPost, "/api/nav/teacher", token, map[string]string{"teacher": "Herr Müller"})
	require.Equal(t, http.StatusOK, rec.Code)
	nav = decodeBody[navResponse](t, rec)
	assert.Equal(t, services.StepExams, nav.State.Step)
	assert.Equal(t, []string{"1", "11"}, nav.ids())

	rec = s.request(http.MethodPost, "/api/nav/teacher", token, map[string]string{"teacher": "Herr Wagner"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.request(http.MethodPost, "/api/nav/back", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	nav = decodeBody[navResponse](t, rec)
	assert.Equal(t, services.StepTeachers, nav.State.Step)
	assert.Empty(t, nav.State.SelectedTeacher)

	rec = s.request(http.MethodPost, "/api/nav/reset", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	nav = decodeBody[navResponse](t, rec)
	assert.Equal(t, services.InitialNavigationState(), nav.State)
}

func TestSearchOverlay(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "password")

	rec := s.request(http.MethodPost, "/api/nav/search", token, map[string]string{"query": "CHURCHILL"})
	require.Equal(t, http.StatusOK, rec.Code)
	nav := decodeBody[navResponse](t, rec)
	assert.Equal(t, services.StepSubjects, nav.State.Step)
	assert.Equal(t, []string{"5"}, nav.ids())

	rec = s.request(http.MethodPost, "/api/nav/search", token, map[string]string{"query": "abi"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"4", "19"}, decodeBody[navResponse](t, rec).ids())

	rec = s.request(http.MethodPost, "/api/nav/search", token, map[string]string{"query": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[navResponse](t, rec).Exams, 20)
}

func TestRatingOncePerSession(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "password")

	rec := s.request(http.MethodPost, "/api/exams/11/ratings", token, map[string]int{"difficulty": 3, "quality": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bewertung gespeichert (+5 Karma)", decodeBody[map[string]any](t, rec)["message"])

	rec = s.request(http.MethodPost, "/api/exams/11/ratings", token, map[string]int{"difficulty": 1, "quality": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Sie haben diese Klausur bereits bewertet.", decodeBody[map[string]string](t, rec)["message"])

	rec = s.request(http.MethodPost, "/api/exams/2/ratings", token, map[string]int{"difficulty": 6, "quality": 4})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	exam, ok := s.store.GetExam("11")
	require.True(t, ok)
	assert.Equal(t, 1, exam.Ratings.Count)
	assert.Equal(t, 3, exam.Ratings.DifficultySum)

	rec = s.request(http.MethodGet, "/api/me", token, nil)
	me := decodeBody[struct {
		User struct {
			Karma int `json:"karma"`
		} `json:"user"`
	}](t, rec)
	assert.Equal(t, SeedAdminKarma+services.KarmaPerRating, me.User.Karma)

	s.request(http.MethodPost, "/api/nav/subject", token, map[string]string{"subject": "Mathematik"})
	rec = s.request(http.MethodPost, "/api/nav/teacher", token, map[string]string{"teacher": "Herr Müller"})
	nav := decodeBody[navResponse](t, rec)
	require.Len(t, nav.Exams, 2)
	assert.False(t, nav.Exams[0].HasRated)
	assert.True(t, nav.Exams[1].HasRated)
	assert.Equal(t, 1, nav.Exams[1].Rating.Count)

	// A fresh session may rate again.
	other := s.login("admin", "password")
	rec = s.request(http.MethodPost, "/api/exams/11/ratings", other, map[string]int{"difficulty": 2, "quality": 2})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadByStudentNeedsApproval(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "password")
	student := s.approvedStudent(admin, "lena")

	rec := s.request(http.MethodPost, "/api/exams", student, map[string]string{
		"subject":      "Latein",
		"teacher":      "Frau Cicero",
		"grade_level":  "10",
		"file_name":    "uebersetzung.jpg",
		"mime_type":    "image/jpeg",
		"file_content": "data:image/jpeg;base64,AAAA",
		"tags":         "grammatik, , grammatik, vokabeln",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	up := decodeBody[struct {
		Exam struct {
			ID         string   `json:"id"`
			IsApproved bool     `json:"is_approved"`
			FileType   string   `json:"file_type"`
			Tags       []string `json:"tags"`
			Transcript string   `json:"transcript"`
			Date       string   `json:"date"`
		} `json:"exam"`
		Message string `json:"message"`
	}](t, rec)
	assert.False(t, up.Exam.IsApproved)
	assert.Equal(t, "IMAGE", up.Exam.FileType)
	assert.Equal(t, []string{"grammatik", "vokabeln"}, up.Exam.Tags)
	assert.NotEmpty(t, up.Exam.Transcript)
	assert.NotEmpty(t, up.Exam.Date)
	assert.Equal(t, "Klausur hochgeladen! Warte auf Freigabe durch Admin. (+50 Karma)", up.Message)

	nav := decodeBody[navResponse](t, s.request(http.MethodGet, "/api/nav", student, nil))
	assert.NotContains(t, nav.Subjects, "Latein")

	rec = s.request(http.MethodGet, "/api/admin/dashboard", student, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "unauthorized", decodeBody[map[string]string](t, rec)["error"])

	rec = s.request(http.MethodGet, "/api/admin/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decodeBody[services.Dashboard](t, rec)
	require.Len(t, dash.PendingExams, 1)
	assert.Equal(t, up.Exam.ID, dash.PendingExams[0].ID)

	rec = s.request(http.MethodPost, "/api/admin/exams/"+up.Exam.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	nav = decodeBody[navResponse](t, s.request(http.MethodGet, "/api/nav", student, nil))
	assert.Contains(t, nav.Subjects, "Latein")
	assert.Equal(t, up.Exam.ID, nav.Exams[0].ID)

	user, err := s.store.FindUserByUsername("lena")
	require.NoError(t, err)
	assert.Equal(t, services.KarmaPerUpload, user.Karma)
}

func TestUploadValidation(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "password")

	rec := s.request(http.MethodPost, "/api/exams", admin, map[string]string{"subject": "Mathematik", "file_name": "x.pdf"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.request(http.MethodPost, "/api/exams", admin, map[string]string{
		"subject": "Mathematik", "teacher": "Herr Müller", "file_name": "x.pdf", "date": "15.11.2023",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.request(http.MethodPost, "/api/exams", admin, map[string]string{
		"subject": "Mathematik", "teacher": "Herr Müller", "file_name": "x.pdf", "date": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Klausur erfolgreich hochgeladen! (+50 Karma)", decodeBody[map[string]any](t, rec)["message"])
}

func TestDownloadViewTagAndReport(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "password")

	rec := s.request(http.MethodPost, "/api/exams/1/download", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mathe_kl1.pdf", decodeBody[map[string]any](t, rec)["file_name"])

	rec = s.request(http.MethodPost, "/api/exams/nope/download", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Equal(t, http.StatusOK, s.request(http.MethodPost, "/api/exams/1/view", token, nil).Code)
	require.Equal(t, http.StatusOK, s.request(http.MethodPost, "/api/exams/1/tags", token, map[string]string{"tag": "integrale"}).Code)
	require.Equal(t, http.StatusOK, s.request(http.MethodPost, "/api/exams/1/tags", token, map[string]string{"tag": "integrale"}).Code)
	require.Equal(t, http.StatusOK, s.request(http.MethodPost, "/api/exams/1/report", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.request(http.MethodPost, "/api/exams/1/tags", token, map[string]string{"tag": ""}).Code)

	exam, _ := s.store.GetExam("1")
	assert.Equal(t, 46, exam.Downloads)
	assert.Equal(t, 125, exam.Views)
	assert.Equal(t, []string{"analysis", "schwer", "klausur", "integrale"}, exam.Tags)
	assert.True(t, exam.IsReported)

	rec = s.request(http.MethodPost, "/api/admin/exams/1/clear-report", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exam, _ = s.store.GetExam("1")
	assert.False(t, exam.IsReported)
}

func TestTipsToggle(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "password")

	rec := s.request(http.MethodPost, "/api/exams/4/tips", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["shown"])
	assert.Equal(t, s.gen.text, body["tips"])

	nav := decodeBody[navResponse](t, s.request(http.MethodPost, "/api/nav/search", token, map[string]string{"query": "quanten"}))
	require.Len(t, nav.Exams, 1)
	require.NotNil(t, nav.Exams[0].Tips)
	assert.Equal(t, s.gen.text, *nav.Exams[0].Tips)

	rec = s.request(http.MethodPost, "/api/exams/4/tips", token, nil)
	body = decodeBody[map[string]any](t, rec)
	assert.Equal(t, false, body["shown"])
	assert.NotContains(t, body, "tips")
	assert.Equal(t, 1, s.gen.calls)

	assert.Equal(t, http.StatusNotFound, s.request(http.MethodPost, "/api/exams/nope/tips", token, nil).Code)
}

func TestFavoritesAndTheme(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "password")

	rec := s.request(http.MethodPost, "/api/favorites/3/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["favorite"])
	assert.Equal(t, "Zu Favoriten hinzugefügt", body["message"])
	s.request(http.MethodPost, "/api/favorites/unbekannt/toggle", token, nil)

	rec = s.request(http.MethodGet, "/api/favorites", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	favs := decodeBody[navResponse](t, rec)
	require.Len(t, favs.Exams, 1)
	assert.Equal(t, "3", favs.Exams[0].ID)
	assert.True(t, favs.Exams[0].IsFavorite)

	rec = s.request(http.MethodPost, "/api/favorites/3/toggle", token, nil)
	assert.Equal(t, "Aus Favoriten entfernt", decodeBody[map[string]any](t, rec)["message"])

	rec = s.request(http.MethodGet, "/api/preferences/theme", "", nil)
	assert.Equal(t, "light", decodeBody[map[string]string](t, rec)["theme"])
	rec = s.request(http.MethodPost, "/api/preferences/theme/toggle", "", nil)
	assert.Equal(t, "dark", decodeBody[map[string]string](t, rec)["theme"])
}

func TestAdminDeleteAuditAndExport(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "password")

	require.Equal(t, http.StatusOK, s.request(http.MethodDelete, "/api/admin/exams/20", admin, nil).Code)
	require.Equal(t, http.StatusOK, s.request(http.MethodDelete, "/api/admin/exams/20", admin, nil).Code)
	_, ok := s.store.GetExam("20")
	assert.False(t, ok)

	rec := s.request(http.MethodGet, "/api/admin/audit", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	audit := decodeBody[struct {
		Entries []struct {
			Actor  string `json:"actor"`
			Action string `json:"action"`
			Target string `json:"target"`
		} `json:"entries"`
	}](t, rec)
	require.Len(t, audit.Entries, 1)
	assert.Equal(t, "admin", audit.Entries[0].Actor)
	assert.Equal(t, "exam.delete", audit.Entries[0].Action)
	assert.Equal(t, "20", audit.Entries[0].Target)

	rec = s.request(http.MethodGet, "/api/admin/export.csv", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 20)

	rec = s.request(http.MethodGet, "/api/leaderboard", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeBody[struct {
		Leaderboard []services.LeaderboardEntry `json:"leaderboard"`
	}](t, rec)
	require.NotEmpty(t, board.Leaderboard)
	assert.Equal(t, "admin", board.Leaderboard[0].Username)
	assert.Equal(t, 1, board.Leaderboard[0].Rank)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.request(http.MethodGet, "/health", "", nil)
	rec := s.request(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "klausurarchiv_http_requests_total")
}
