package services

import (
	"context"
	"strings"
	"time"

	"github.com/soaringjerry/klausurarchiv/internal/models"
)

const (
	KarmaPerRating = 5
	KarmaPerUpload = 50
)

type ModerationStore interface {
	ExamReader
	UpdateExam(id string, fn ExamUpdate) bool
	PrependExam(e models.Exam)
	DeleteExam(id string) bool
	UpdateUser(id string, fn UserUpdate) bool
	AddAudit(entry models.AuditEntry)
}

// ModerationService validates user actions on exams and users and writes
// them back to the store. Missing ids are a silent no-op throughout.
type ModerationService struct {
	store ModerationStore
	ocr   TextExtractor
	now   func() time.Time
	idGen func() string
}

type UploadRequest struct {
	Subject     string
	Teacher     string
	GradeLevel  string
	Date        string
	FileName    string
	MimeType    string
	FileContent string
	Tags        string // comma separated
}

func NewModerationService(store ModerationStore, ocr TextExtractor) *ModerationService {
	return &ModerationService{
		store: store,
		ocr:   ocr,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(9) },
	}
}

// AddTag appends tag unless the exam already carries it (exact match).
func (s *ModerationService) AddTag(examID, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return NewInvalidError("tag required")
	}
	s.store.UpdateExam(examID, func(e models.Exam) models.Exam {
		if containsTag(e.Tags, tag) {
			return e
		}
		e.Tags = append(append([]string(nil), e.Tags...), tag)
		return e
	})
	return nil
}

// SubmitRating expects difficulty and quality in 1..5; the range is the caller's
// responsibility. The acting user earns KarmaPerRating.
func (s *ModerationService) SubmitRating(actor *models.User, examID string, difficulty, quality int) error {
	if ok := s.store.UpdateExam(examID, func(e models.Exam) models.Exam {
		e.Ratings = applyRating(e.Ratings, difficulty, quality)
		return e
	}); !ok {
		return nil
	}
	if actor != nil {
		s.creditKarma(actor.ID, KarmaPerRating)
	}
	return nil
}

func (s *ModerationService) ReportExam(examID string) error {
	s.store.UpdateExam(examID, func(e models.Exam) models.Exam {
		e.IsReported = true
		return e
	})
	return nil
}

func (s *ModerationService) RecordView(examID string) error {
	s.store.UpdateExam(examID, func(e models.Exam) models.Exam {
		e.Views++
		return e
	})
	return nil
}

// RecordDownload bumps the counter and returns what the client should save.
func (s *ModerationService) RecordDownload(examID string) (*DownloadInfo, error) {
	var info *DownloadInfo
	s.store.UpdateExam(examID, func(e models.Exam) models.Exam {
		e.Downloads++
		info = &DownloadInfo{FileName: DownloadFileName(e), FileContent: e.FileContent}
		return e
	})
	if info == nil {
		return nil, NewNotFoundError("exam not found")
	}
	return info, nil
}

// UploadExam builds a new exam, auto-approved only for administrators, and
// prepends it so listings stay most-recent-first.
func (s *ModerationService) UploadExam(ctx context.Context, uploader *models.User, req UploadRequest) (*models.Exam, error) {
	if uploader == nil {
		return nil, NewForbiddenError("login required")
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Teacher) == "" || strings.TrimSpace(req.FileName) == "" {
		return nil, NewInvalidError("subject, teacher and file required")
	}
	fileType := models.FileTypePDF
	if strings.HasPrefix(req.MimeType, "image/") {
		fileType = models.FileTypeImage
	}
	exam := models.Exam{
		ID:           s.idGen(),
		Subject:      req.Subject,
		Teacher:      req.Teacher,
		GradeLevel:   req.GradeLevel,
		Date:         req.Date,
		UploaderName: uploader.Username,
		FileName:     req.FileName,
		FileType:     fileType,
		Tags:         ParseTags(req.Tags),
		IsApproved:   isAdmin(uploader),
	}
	if exam.Date == "" {
		exam.Date = s.now().Format("2006-01-02")
	}
	if fileType == models.FileTypeImage {
		exam.FileContent = req.FileContent
		if s.ocr != nil {
			transcript, err := s.ocr.Extract(ctx, req.FileName)
			if err != nil {
				return nil, err
			}
			exam.Transcript = transcript
		}
	}
	s.store.PrependExam(exam)
	s.creditKarma(uploader.ID, KarmaPerUpload)
	out := exam.Clone()
	return &out, nil
}

func (s *ModerationService) ApproveExam(actor *models.User, examID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if s.store.UpdateExam(examID, func(e models.Exam) models.Exam {
		e.IsApproved = true
		return e
	}) {
		s.audit(actor, "exam.approve", examID)
	}
	return nil
}

func (s *ModerationService) DeleteExam(actor *models.User, examID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if s.store.DeleteExam(examID) {
		s.audit(actor, "exam.delete", examID)
	}
	return nil
}

func (s *ModerationService) ClearReport(actor *models.User, examID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if s.store.UpdateExam(examID, func(e models.Exam) models.Exam {
		e.IsReported = false
		return e
	}) {
		s.audit(actor, "exam.clear_report", examID)
	}
	return nil
}

func (s *ModerationService) ApproveUser(actor *models.User, userID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if s.store.UpdateUser(userID, func(u models.User) models.User {
		u.IsApproved = true
		return u
	}) {
		s.audit(actor, "user.approve", userID)
	}
	return nil
}

func (s *ModerationService) creditKarma(userID string, amount int) {
	s.store.UpdateUser(userID, func(u models.User) models.User {
		u.Karma += amount
		return u
	})
}

func (s *ModerationService) audit(actor *models.User, action, target string) {
	s.store.AddAudit(models.AuditEntry{Time: s.now(), Actor: actor.Username, Action: action, Target: target})
}

// ParseTags splits a comma separated list, trimming entries and dropping empties and duplicates.
func ParseTags(input string) []string {
	out := []string{}
	for _, part := range strings.Split(input, ",") {
		t := strings.TrimSpace(part)
		if t == "" || containsTag(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
