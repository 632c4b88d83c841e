package services

import (
	"sort"
	"strings"

	"github.com/soaringjerry/klausurarchiv/internal/models"
	"golang.org/x/text/cases"
)

// Step is a wizard position.
type Step string

const (
	StepSubjects Step = "SUBJECTS"
	StepTeachers Step = "TEACHERS"
	StepExams    Step = "EXAMS"
)

// NavigationState is the wizard position plus the search overlay.
// Empty SelectedSubject/SelectedTeacher mean "unset".
type NavigationState struct {
	Step            Step   `json:"step"`
	SelectedSubject string `json:"selected_subject,omitempty"`
	SelectedTeacher string `json:"selected_teacher,omitempty"`
	SearchQuery     string `json:"search_query"`
}

func InitialNavigationState() NavigationState {
	return NavigationState{Step: StepSubjects}
}

// SelectSubject is only valid on the SUBJECTS step.
func (n NavigationState) SelectSubject(subject string) (NavigationState, error) {
	if n.Step != StepSubjects {
		return n, ErrInvalidTransition
	}
	n.SelectedSubject = subject
	n.Step = StepTeachers
	return n, nil
}

// SelectTeacher is only valid on the TEACHERS step.
func (n NavigationState) SelectTeacher(teacher string) (NavigationState, error) {
	if n.Step != StepTeachers {
		return n, ErrInvalidTransition
	}
	n.SelectedTeacher = teacher
	n.Step = StepExams
	return n, nil
}

// GoBack clears an active search first; otherwise it steps the wizard back one level.
func (n NavigationState) GoBack() NavigationState {
	if n.SearchQuery != "" {
		n.SearchQuery = ""
		return n
	}
	switch n.Step {
	case StepExams:
		n.Step = StepTeachers
		n.SelectedTeacher = ""
	case StepTeachers:
		n.Step = StepSubjects
		n.SelectedSubject = ""
	case StepSubjects:
	}
	return n
}

func (n NavigationState) Reset() NavigationState {
	return InitialNavigationState()
}

// SetSearch never changes Step.
func (n NavigationState) SetSearch(query string) NavigationState {
	n.SearchQuery = query
	return n
}

// PublicSet keeps only approved exams, preserving order.
func PublicSet(exams []models.Exam) []models.Exam {
	out := make([]models.Exam, 0, len(exams))
	for _, e := range exams {
		if e.IsApproved {
			out = append(out, e)
		}
	}
	return out
}

func AvailableSubjects(exams []models.Exam) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, e := range PublicSet(exams) {
		if _, ok := seen[e.Subject]; ok {
			continue
		}
		seen[e.Subject] = struct{}{}
		out = append(out, e.Subject)
	}
	sort.Strings(out)
	return out
}

func AvailableTeachers(exams []models.Exam, subject string) []string {
	out := []string{}
	if subject == "" {
		return out
	}
	seen := map[string]struct{}{}
	for _, e := range PublicSet(exams) {
		if e.Subject != subject {
			continue
		}
		if _, ok := seen[e.Teacher]; ok {
			continue
		}
		seen[e.Teacher] = struct{}{}
		out = append(out, e.Teacher)
	}
	sort.Strings(out)
	return out
}

// VisibleExams applies the search overlay when active, else the wizard selections.
func VisibleExams(exams []models.Exam, state NavigationState) []models.Exam {
	public := PublicSet(exams)
	out := make([]models.Exam, 0, len(public))
	if state.SearchQuery != "" {
		fold := cases.Fold()
		q := fold.String(state.SearchQuery)
		contains := func(s string) bool { return strings.Contains(fold.String(s), q) }
		for _, e := range public {
			if matchesSearch(e, contains) {
				out = append(out, e)
			}
		}
		return out
	}
	for _, e := range public {
		if state.SelectedSubject != "" && e.Subject != state.SelectedSubject {
			continue
		}
		if state.SelectedTeacher != "" && e.Teacher != state.SelectedTeacher {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(e models.Exam, contains func(string) bool) bool {
	if contains(e.Subject) || contains(e.Teacher) {
		return true
	}
	for _, t := range e.Tags {
		if contains(t) {
			return true
		}
	}
	return e.Transcript != "" && contains(e.Transcript)
}
