package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// GET /api/admin/dashboard
func (rt *Router) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sc := currentSession(r)
	d, err := rt.insights.Dashboard(&sc.user)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// GET /api/admin/export.csv
func (rt *Router) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	sc := currentSession(r)
	b, err := rt.insights.ExportCSV(&sc.user)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=klausurarchiv_"+time.Now().UTC().Format("20060102")+".csv")
	_, _ = w.Write(b)
}

// GET /api/admin/audit
func (rt *Router) handleAudit(w http.ResponseWriter, r *http.Request) {
	sc := currentSession(r)
	entries, err := rt.insights.Audit(&sc.user)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// POST /api/admin/exams/{id}/approve
func (rt *Router) handleApproveExam(w http.ResponseWriter, r *http.Request) {
	sc := currentSession(r)
	if err := rt.moderation.ApproveExam(&sc.user, chi.URLParam(r, "id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeMessage(w, r, "admin.exam_approved")
}

// DELETE /api/admin/exams/{id}
func (rt *Router) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	sc := currentSession(r)
	if err := rt.moderation.DeleteExam(&sc.user, chi.URLParam(r, "id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeMessage(w, r, "admin.exam_deleted")
}

// POST /api/admin/exams/{id}/clear-report
func (rt *Router) handleClearReport(w http.ResponseWriter, r *http.Request) {
	sc := currentSession(r)
	if err := rt.moderation.ClearReport(&sc.user, chi.URLParam(r, "id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeMessage(w, r, "admin.report_cleared")
}

// POST /api/admin/users/{id}/approve
func (rt *Router) handleApproveUser(w http.ResponseWriter, r *http.Request) {
	sc := currentSession(r)
	if err := rt.moderation.ApproveUser(&sc.user, chi.URLParam(r, "id")); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeMessage(w, r, "admin.user_approved")
}
