package services

import "github.com/soaringjerry/klausurarchiv/internal/models"

// ExamUpdate transforms a snapshot of an exam into its replacement.
type ExamUpdate func(models.Exam) models.Exam

// UserUpdate transforms a snapshot of a user into its replacement.
type UserUpdate func(models.User) models.User

// ExamReader is the read side of the entity store shared by every service.
type ExamReader interface {
	ListExams() []models.Exam
	GetExam(id string) (models.Exam, bool)
}

type UserReader interface {
	ListUsers() []models.User
	GetUser(id string) (models.User, bool)
}

// isAdmin is the single role switch used by every admin-gated operation.
func isAdmin(u *models.User) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case models.RoleAdministrator:
		return true
	case models.RoleRegular:
		return false
	default:
		return false
	}
}

func requireAdmin(u *models.User) error {
	if !isAdmin(u) {
		return ErrUnauthorized
	}
	return nil
}
