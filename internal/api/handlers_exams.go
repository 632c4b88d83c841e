package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soaringjerry/klausurarchiv/internal/middleware"
	"github.com/soaringjerry/klausurarchiv/internal/services"
	"github.com/soaringjerry/klausurarchiv/internal/utils"
)

type uploadRequest struct {
	Subject     string `json:"subject" validate:"required"`
	Teacher     string `json:"teacher" validate:"required"`
	GradeLevel  string `json:"grade_level"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	FileName    string `json:"file_name" validate:"required"`
	MimeType    string `json:"mime_type"`
	FileContent string `json:"file_content"`
	Tags        string `json:"tags"`
}

type tagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

type ratingRequest struct {
	Difficulty int `json:"difficulty" validate:"required,min=1,max=5"`
	Quality    int `json:"quality" validate:"required,min=1,max=5"`
}

// POST /api/exams
func (rt *Router) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := rt.decode(w, r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	sc := currentSession(r)
	exam, err := rt.moderation.UploadExam(r.Context(), &sc.user, services.UploadRequest{
		Subject:     req.Subject,
		Teacher:     req.Teacher,
		GradeLevel:  req.GradeLevel,
		Date:        req.Date,
		FileName:    req.FileName,
		MimeType:    req.MimeType,
		FileContent: req.FileContent,
		Tags:        req.Tags,
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.count("upload")
	key := "exam.upload_pending"
	if exam.IsApproved {
		key = "exam.uploaded"
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"exam":    exam,
		"message": utils.T(middleware.LocaleFromContext(r.Context()), key),
	})
}

// POST /api/exams/{id}/view
func (rt *Router) handleView(w http.ResponseWriter, r *http.Request) {
	if err := rt.moderation.RecordView(chi.URLParam(r, "id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.count("view")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// POST /api/exams/{id}/download
func (rt *Router) handleDownload(w http.ResponseWriter, r *http.Request) {
	info, err := rt.moderation.RecordDownload(chi.URLParam(r, "id"))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.count("download")
	writeJSON(w, http.StatusOK, map[string]any{
		"file_name":    info.FileName,
		"file_content": info.FileContent,
		"message":      utils.T(middleware.LocaleFromContext(r.Context()), "exam.download_started"),
	})
}

// POST /api/exams/{id}/tags
func (rt *Router) handleAddTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := rt.decode(w, r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	if err := rt.moderation.AddTag(chi.URLParam(r, "id"), req.Tag); err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.count("tag")
	writeMessage(w, r, "exam.tag_added")
}

// POST /api/exams/{id}/ratings; one rating per exam per session.
func (rt *Router) handleRate(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := rt.decode(w, r, &req); err != nil {
		rt.writeError(w, r, err)
		return
	}
	sc := currentSession(r)
	id := chi.URLParam(r, "id")
	if !sc.session.MarkRated(id) {
		locale := middleware.LocaleFromContext(r.Context())
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":   string(services.ErrorConflict),
			"message": utils.T(locale, "exam.already_rated"),
		})
		return
	}
	if err := rt.moderation.SubmitRating(&sc.user, id, req.Difficulty, req.Quality); err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.count("rating")
	writeMessage(w, r, "exam.rated")
}

// POST /api/exams/{id}/report
func (rt *Router) handleReport(w http.ResponseWriter, r *http.Request) {
	if err := rt.moderation.ReportExam(chi.URLParam(r, "id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.count("report")
	writeMessage(w, r, "exam.reported")
}

// POST /api/exams/{id}/tips shows tips for the exam, or hides them when shown.
func (rt *Router) handleTips(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	exam, ok := rt.store.GetExam(id)
	if !ok {
		rt.writeError(w, r, services.NewNotFoundError("exam not found"))
		return
	}
	sess := currentSession(r).session
	text, shown := sess.ToggleTips(r.Context(), id, func(ctx context.Context) string {
		return rt.tips.StudyTips(ctx, exam.Subject, exam.Teacher)
	})
	if rt.metrics != nil {
		outcome := "hidden"
		if shown {
			outcome = "shown"
		}
		rt.metrics.Tips(outcome)
	}
	resp := map[string]any{"exam_id": id, "shown": shown}
	if shown {
		resp["tips"] = text
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/leaderboard
func (rt *Router) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": rt.insights.Leaderboard()})
}
