package models

import "time"

// Role distinguishes regular users from administrators.
type Role string

const (
	RoleRegular       Role = "REGULAR"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// User is a registered account. Username is unique; Karma only grows.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Credential []byte `json:"-"` // bcrypt hash
	Role       Role   `json:"role"`
	IsApproved bool   `json:"is_approved"`
	Karma      int    `json:"karma"`
}

// FileType of an uploaded exam document.
type FileType string

const (
	FileTypePDF   FileType = "PDF"
	FileTypeImage FileType = "IMAGE"
)

// Ratings holds running sums; averages are derived on demand.
type Ratings struct {
	DifficultySum int `json:"difficulty_sum"`
	QualitySum    int `json:"quality_sum"`
	Count         int `json:"count"`
}

// Exam is one catalogued exam document.
type Exam struct {
	ID           string   `json:"id"`
	Subject      string   `json:"subject"`
	Teacher      string   `json:"teacher"`
	GradeLevel   string   `json:"grade_level"`
	Date         string   `json:"date"`
	UploaderName string   `json:"uploader_name"`
	FileName     string   `json:"file_name"`
	FileType     FileType `json:"file_type"`
	FileContent  string   `json:"file_content,omitempty"` // preview reference only
	Tags         []string `json:"tags"`
	Ratings      Ratings  `json:"ratings"`
	Transcript   string   `json:"transcript,omitempty"`
	IsApproved   bool     `json:"is_approved"`
	IsReported   bool     `json:"is_reported"`
	Views        int      `json:"views"`
	Downloads    int      `json:"downloads"`
}

// Clone returns a copy that shares no backing arrays with e.
func (e Exam) Clone() Exam {
	out := e
	out.Tags = append([]string(nil), e.Tags...)
	return out
}

// Clone returns a copy that shares no backing arrays with u.
func (u User) Clone() User {
	out := u
	out.Credential = append([]byte(nil), u.Credential...)
	return out
}

// AuditEntry records one administrative action.
type AuditEntry struct {
	Time   time.Time `json:"time"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	Target string    `json:"target"`
	Note   string    `json:"note,omitempty"`
}
