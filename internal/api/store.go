package api

import (
	"sync"

	"github.com/soaringjerry/klausurarchiv/internal/models"
	"github.com/soaringjerry/klausurarchiv/internal/services"
)

// memoryStore is the entity store. Every mutation builds a new slice with one
// element replaced and swaps it in under the lock; published slices are never
// written again, and readers receive clones.
type memoryStore struct {
	mu    sync.RWMutex
	users []models.User
	exams []models.Exam
	audit []models.AuditEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: []models.User{},
		exams: []models.Exam{},
		audit: []models.AuditEntry{},
	}
}

// NewStore returns an empty in-memory entity store.
func NewStore() Store {
	return newMemoryStore()
}

func (s *memoryStore) ListExams() []models.Exam {
	s.mu.RLock()
	exams := s.exams
	s.mu.RUnlock()
	out := make([]models.Exam, len(exams))
	for i, e := range exams {
		out[i] = e.Clone()
	}
	return out
}

func (s *memoryStore) GetExam(id string) (models.Exam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexExam(s.exams, id); i >= 0 {
		return s.exams[i].Clone(), true
	}
	return models.Exam{}, false
}

func (s *memoryStore) UpdateExam(id string, fn services.ExamUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexExam(s.exams, id)
	if i < 0 {
		return false
	}
	next := make([]models.Exam, len(s.exams))
	copy(next, s.exams)
	updated := fn(s.exams[i].Clone())
	updated.ID = id
	next[i] = updated
	s.exams = next
	return true
}

func (s *memoryStore) PrependExam(e models.Exam) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Exam, 0, len(s.exams)+1)
	next = append(next, e.Clone())
	s.exams = append(next, s.exams...)
}

func (s *memoryStore) DeleteExam(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexExam(s.exams, id)
	if i < 0 {
		return false
	}
	next := make([]models.Exam, 0, len(s.exams)-1)
	next = append(next, s.exams[:i]...)
	s.exams = append(next, s.exams[i+1:]...)
	return true
}

func (s *memoryStore) ListUsers() []models.User {
	s.mu.RLock()
	users := s.users
	s.mu.RUnlock()
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}

func (s *memoryStore) GetUser(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.Clone(), true
		}
	}
	return models.User{}, false
}

// FindUserByUsername is an exact, case-sensitive match.
func (s *memoryStore) FindUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			c := u.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// AddUser re-checks uniqueness under the write lock so concurrent
// registrations cannot both succeed.
func (s *memoryStore) AddUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return services.ErrUsernameTaken
		}
	}
	next := make([]models.User, 0, len(s.users)+1)
	next = append(next, s.users...)
	s.users = append(next, u.Clone())
	return nil
}

func (s *memoryStore) UpdateUser(id string, fn services.UserUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID != id {
			continue
		}
		next := make([]models.User, len(s.users))
		copy(next, s.users)
		updated := fn(u.Clone())
		updated.ID = id
		if updated.Karma < u.Karma {
			updated.Karma = u.Karma
		}
		next[i] = updated
		s.users = next
		return true
	}
	return false
}

func (s *memoryStore) AddAudit(e models.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, e)
}

func (s *memoryStore) ListAudit() []models.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditEntry(nil), s.audit...)
}

func indexExam(exams []models.Exam, id string) int {
	for i, e := range exams {
		if e.ID == id {
			return i
		}
	}
	return -1
}
