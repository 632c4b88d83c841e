package api

import (
	"net/http"

	"github.com/soaringjerry/klausurarchiv/internal/models"
	"github.com/soaringjerry/klausurarchiv/internal/services"
)

type examView struct {
	models.Exam
	Rating     services.RatingSummary `json:"rating"`
	IsFavorite bool                   `json:"is_favorite"`
	HasRated   bool                   `json:"has_rated"`
	Tips       *string                `json:"tips,omitempty"`
}

type navView struct {
	State    services.NavigationState `json:"state"`
	Subjects []string                 `json:"subjects"`
	Teachers []string                 `json:"teachers"`
	Exams    []examView               `json:"exams"`
}

func (rt *Router) examViews(sess *services.Session, exams []models.Exam) []examView {
	out := make([]examView, 0, len(exams))
	for _, e := range exams {
		v := examView{
			Exam:       e,
			Rating:     services.SummarizeRatings(e.Ratings),
			IsFavorite: rt.favorites.IsFavorite(e.ID),
			HasRated:   sess.HasRated(e.ID),
		}
		if tips, ok := sess.Tips(e.ID); ok {
			v.Tips = &tips
		}
		out = append(out, v)
	}
	return out
}

func (rt *Router) buildNavView(sess *services.Session, state services.NavigationState) navView {
	exams := rt.store.ListExams()
	teachers := []string{}
	if state.SelectedSubject != "" {
		teachers = services.AvailableTeachers(exams, state.SelectedSubject)
	}
	return navView{
		State:    state,
		Subjects: services.AvailableSubjects(exams),
		Teachers: teachers,
		Exams:    rt.examViews(sess, services.VisibleExams(exams, state)),
	}
}

func (rt *Router) navigate(w http.ResponseWriter, r *http.Request, fn func(services.NavigationState) (services.NavigationState, error)) {
	sess := currentSession(r).session
	state, err := sess.Navigate(fn)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt.buildNavView(sess, state))
}

// GET /api/nav
func (rt *Router) handleNav(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r).session
	writeJSON(w, http.StatusOK, rt.buildNavView(sess, sess.Navigation()))
}

type subjectRequest struct {
	Subject string `json:"subject" validate:"required"`
}

type teacherRequest struct {
	Teacher string `json:"teacher" validate:"required"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// POST /api/nav/subject
func (rt *Router) handleNavSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if err := rt.decode(w, r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.navigate(w, r, func(s services.NavigationState) (services.NavigationState, error) {
		return s.SelectSubject(req.Subject)
	})
}

// POST /api/nav/teacher
func (rt *Router) handleNavTeacher(w http.ResponseWriter, r *http.Request) {
	var req teacherRequest
	if err := rt.decode(w, r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.navigate(w, r, func(s services.NavigationState) (services.NavigationState, error) {
		return s.SelectTeacher(req.Teacher)
	})
}

// POST /api/nav/back
func (rt *Router) handleNavBack(w http.ResponseWriter, r *http.Request) {
	rt.navigate(w, r, func(s services.NavigationState) (services.NavigationState, error) {
		return s.GoBack(), nil
	})
}

// POST /api/nav/reset
func (rt *Router) handleNavReset(w http.ResponseWriter, r *http.Request) {
	rt.navigate(w, r, func(s services.NavigationState) (services.NavigationState, error) {
		return s.Reset(), nil
	})
}

// POST /api/nav/search; an empty query turns the overlay off.
func (rt *Router) handleNavSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := rt.decode(w, r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.navigate(w, r, func(s services.NavigationState) (services.NavigationState, error) {
		return s.SetSearch(req.Query), nil
	})
}
