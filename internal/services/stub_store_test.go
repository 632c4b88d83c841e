package services

import "github.com/soaringjerry/klausurarchiv/internal/models"

type stubEntityStore struct {
	exams []models.Exam
	users []models.User
	audit []models.AuditEntry
}

func (s *stubEntityStore) ListExams() []models.Exam {
	out := make([]models.Exam, 0, len(s.exams))
	for _, e := range s.exams {
		out = append(out, e.Clone())
	}
	return out
}

func (s *stubEntityStore) GetExam(id string) (models.Exam, bool) {
	for _, e := range s.exams {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.Exam{}, false
}

func (s *stubEntityStore) ListUsers() []models.User {
	return append([]models.User(nil), s.users...)
}

func (s *stubEntityStore) GetUser(id string) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *stubEntityStore) UpdateExam(id string, fn ExamUpdate) bool {
	for i, e := range s.exams {
		if e.ID == id {
			s.exams[i] = fn(e.Clone())
			return true
		}
	}
	return false
}

func (s *stubEntityStore) PrependExam(e models.Exam) {
	s.exams = append([]models.Exam{e}, s.exams...)
}

func (s *stubEntityStore) DeleteExam(id string) bool {
	for i, e := range s.exams {
		if e.ID == id {
			s.exams = append(s.exams[:i:i], s.exams[i+1:]...)
			return true
		}
	}
	return false
}

func (s *stubEntityStore) UpdateUser(id string, fn UserUpdate) bool {
	for i, u := range s.users {
		if u.ID == id {
			s.users[i] = fn(u)
			return true
		}
	}
	return false
}

func (s *stubEntityStore) AddAudit(entry models.AuditEntry) {
	s.audit = append(s.audit, entry)
}

func (s *stubEntityStore) ListAudit() []models.AuditEntry {
	return append([]models.AuditEntry(nil), s.audit...)
}

func (s *stubEntityStore) user(id string) models.User {
	u, _ := s.GetUser(id)
	return u
}

func (s *stubEntityStore) exam(id string) models.Exam {
	e, _ := s.GetExam(id)
	return e
}
