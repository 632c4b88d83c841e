package services

import (
	"sort"

	"github.com/soaringjerry/klausurarchiv/internal/models"
)

const leaderboardSize = 10

type InsightsStore interface {
	ExamReader
	UserReader
	ListAudit() []models.AuditEntry
}

// InsightsService serves the admin dashboard. It reads the store directly and
// does not apply the public-set filter.
type InsightsService struct {
	store InsightsStore
}

type UploaderCount struct {
	Uploader string `json:"uploader"`
	Uploads  int    `json:"uploads"`
}

type ExamInsight struct {
	ID        string        `json:"id"`
	Subject   string        `json:"subject"`
	Teacher   string        `json:"teacher"`
	Uploader  string        `json:"uploader"`
	Views     int           `json:"views"`
	Downloads int           `json:"downloads"`
	Rating    RatingSummary `json:"rating"`
}

type Dashboard struct {
	UserCount      int             `json:"user_count"`
	ExamCount      int             `json:"exam_count"`
	TotalViews     int             `json:"total_views"`
	TotalDownloads int             `json:"total_downloads"`
	PendingUsers   []models.User   `json:"pending_users"`
	PendingExams   []models.Exam   `json:"pending_exams"`
	ReportedExams  []models.Exam   `json:"reported_exams"`
	Uploaders      []UploaderCount `json:"uploaders"`
	Exams          []ExamInsight   `json:"exams"`
}

type LeaderboardEntry struct {
	Rank     int         `json:"rank"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Karma    int         `json:"karma"`
}

func NewInsightsService(store InsightsStore) *InsightsService {
	return &InsightsService{store: store}
}

func (s *InsightsService) Dashboard(actor *models.User) (*Dashboard, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	exams := s.store.ListExams()
	users := s.store.ListUsers()
	d := &Dashboard{
		UserCount:     len(users),
		ExamCount:     len(exams),
		PendingUsers:  []models.User{},
		PendingExams:  []models.Exam{},
		ReportedExams: []models.Exam{},
		Exams:         []ExamInsight{},
	}
	for _, u := range users {
		if !u.IsApproved {
			d.PendingUsers = append(d.PendingUsers, u)
		}
	}
	counts := map[string]int{}
	order := []string{}
	for _, e := range exams {
		d.TotalViews += e.Views
		d.TotalDownloads += e.Downloads
		if !e.IsApproved {
			d.PendingExams = append(d.PendingExams, e)
		} else {
			d.Exams = append(d.Exams, examInsight(e))
		}
		if e.IsReported {
			d.ReportedExams = append(d.ReportedExams, e)
		}
		if _, ok := counts[e.UploaderName]; !ok {
			order = append(order, e.UploaderName)
		}
		counts[e.UploaderName]++
	}
	d.Uploaders = make([]UploaderCount, 0, len(order))
	for _, name := range order {
		d.Uploaders = append(d.Uploaders, UploaderCount{Uploader: name, Uploads: counts[name]})
	}
	sort.SliceStable(d.Uploaders, func(i, j int) bool { return d.Uploaders[i].Uploads > d.Uploaders[j].Uploads })
	return d, nil
}

func (s *InsightsService) Audit(actor *models.User) ([]models.AuditEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.ListAudit(), nil
}

// ExportCSV renders the approved-exam insights table.
func (s *InsightsService) ExportCSV(actor *models.User) ([]byte, error) {
	d, err := s.Dashboard(actor)
	if err != nil {
		return nil, err
	}
	return ExportInsightsCSV(d.Exams)
}

// Leaderboard returns the top users by karma; ties keep store order.
func (s *InsightsService) Leaderboard() []LeaderboardEntry {
	users := s.store.ListUsers()
	sort.SliceStable(users, func(i, j int) bool { return users[i].Karma > users[j].Karma })
	if len(users) > leaderboardSize {
		users = users[:leaderboardSize]
	}
	out := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		out = append(out, LeaderboardEntry{Rank: i + 1, Username: u.Username, Role: u.Role, Karma: u.Karma})
	}
	return out
}

func examInsight(e models.Exam) ExamInsight {
	return ExamInsight{
		ID:        e.ID,
		Subject:   e.Subject,
		Teacher:   e.Teacher,
		Uploader:  e.UploaderName,
		Views:     e.Views,
		Downloads: e.Downloads,
		Rating:    SummarizeRatings(e.Ratings),
	}
}
