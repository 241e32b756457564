package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster/internal/metrics"
	"github.com/stemsi/roster/internal/model"
	"github.com/stemsi/roster/internal/repository"
)

// Sentinel errors for roster operations.
var (
	ErrMissingField  = errors.New("id, name and age are required")
	ErrInvalidNumber = errors.New("age is not a number")
	ErrInvalidAge    = errors.New("age must be a positive integer")
	ErrNoSelection   = errors.New("no student selected")
	ErrDuplicateID   = repository.ErrDuplicateID
	ErrNotFound      = repository.ErrNotFound
)

// SearchStatus tells the caller how to present a search result.
type SearchStatus string

const (
	// SearchAll means no keyword was given and the full roster is returned.
	SearchAll SearchStatus = "all"
	// SearchMatched means at least one student matched the keyword.
	SearchMatched SearchStatus = "matched"
	// SearchNoMatch means a keyword was given and nothing matched.
	SearchNoMatch SearchStatus = "no_match"
)

// SearchResult is the ordered rows to display plus how they were produced.
type SearchResult struct {
	Students []model.Student
	Status   SearchStatus
	Keyword  string
}

// SampleStudents is the roster shown when the application starts.
var SampleStudents = []model.Student{
	{ID: "N221833001", Name: "Zhang San", Age: 20, ClassName: "23 CS Class 1"},
	{ID: "N221833002", Name: "Li Si", Age: 21, ClassName: "23 CS Class 1"},
	{ID: "N221833003", Name: "Wang Wu", Age: 20, ClassName: "23 CS Class 2"},
}

// StudentService is the record store behind every roster view: it validates
// form input, keeps ids unique and answers searches.
type StudentService struct {
	studentRepo *repository.StudentRepository
	metrics     *metrics.Recorder
	log         zerolog.Logger

	mu        sync.Mutex
	listeners []func([]model.Student)
}

// NewStudentService creates a new StudentService. rec may be nil.
func NewStudentService(studentRepo *repository.StudentRepository, rec *metrics.Recorder, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		metrics:     rec,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// OnChange registers fn to receive the full roster after every successful
// mutation. fn runs synchronously on the mutating goroutine.
func (s *StudentService) OnChange(fn func([]model.Student)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Seed loads the sample students. Ids that are already held are skipped.
func (s *StudentService) Seed() []model.Student {
	students := s.studentRepo.List()
	for _, st := range SampleStudents {
		out, err := s.studentRepo.Create(st)
		if err != nil {
			s.log.Warn().Err(err).Str("id", st.ID).Msg("sample student skipped")
			continue
		}
		students = out
	}
	s.log.Info().Int("count", len(students)).Msg("roster seeded")
	s.changed("seed", students)
	return students
}

// List returns the full roster in insertion order.
func (s *StudentService) List() []model.Student {
	return s.studentRepo.List()
}

// Add validates raw form input and appends a new student.
// Checks run in order: required fields, number syntax, age range, id uniqueness.
func (s *StudentService) Add(id, name, ageText, className string) (*model.Student, error) {
	st, err := parseStudent(id, name, ageText, className)
	if err != nil {
		s.reject("add", err, id)
		return nil, err
	}

	students, err := s.studentRepo.Create(*st)
	if err != nil {
		s.reject("add", err, st.ID)
		return nil, err
	}

	s.log.Info().Str("id", st.ID).Str("name", st.Name).Msg("student added")
	s.changed("add", students)
	return st, nil
}

// DeleteAt removes the student shown at position in view, the rows the caller
// is currently displaying. A nil view means the full roster. The row is
// resolved to its id before removal, so deleting from a filtered view never
// removes a different student.
func (s *StudentService) DeleteAt(view []model.Student, position int) ([]model.Student, error) {
	if view == nil {
		view = s.studentRepo.List()
	}
	if position < 0 || position >= len(view) {
		s.reject("delete", ErrNoSelection, strconv.Itoa(position))
		return nil, ErrNoSelection
	}
	return s.deleteID(view[position].ID)
}

// DeleteByID removes the student with the given id.
func (s *StudentService) DeleteByID(id string) ([]model.Student, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		s.reject("delete", ErrNoSelection, id)
		return nil, ErrNoSelection
	}
	return s.deleteID(id)
}

func (s *StudentService) deleteID(id string) ([]model.Student, error) {
	students, err := s.studentRepo.Delete(id)
	if err != nil {
		s.reject("delete", err, id)
		return nil, fmt.Errorf("delete %q: %w", id, err)
	}

	s.log.Info().Str("id", id).Msg("student deleted")
	s.changed("delete", students)
	return students, nil
}

// Search returns students whose id or name contains keyword (case-sensitive).
// An empty keyword returns the full roster with status SearchAll.
func (s *StudentService) Search(keyword string) SearchResult {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		s.metrics.Observe("search", nil)
		return SearchResult{Students: s.studentRepo.List(), Status: SearchAll}
	}

	matches := s.studentRepo.Filter(func(st model.Student) bool {
		return strings.Contains(st.ID, keyword) || strings.Contains(st.Name, keyword)
	})

	status := SearchMatched
	if len(matches) == 0 {
		status = SearchNoMatch
	}
	s.metrics.Observe("search", nil)
	s.log.Debug().Str("keyword", keyword).Int("matches", len(matches)).Msg("roster searched")
	return SearchResult{Students: matches, Status: status, Keyword: keyword}
}

// Reset clears the roster. The sample students are not restored.
func (s *StudentService) Reset() []model.Student {
	students := s.studentRepo.Clear()
	s.log.Info().Msg("roster reset")
	s.changed("reset", students)
	return students
}

func (s *StudentService) reject(op string, err error, id string) {
	s.metrics.Observe(op, err)
	s.log.Debug().Err(err).Str("op", op).Str("id", id).Msg("roster operation rejected")
}

func (s *StudentService) changed(op string, students []model.Student) {
	s.metrics.Observe(op, nil)
	s.metrics.SetRecords(len(students))

	s.mu.Lock()
	listeners := make([]func([]model.Student), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		rows := make([]model.Student, len(students))
		copy(rows, students)
		fn(rows)
	}
}

// parseStudent trims and validates raw form fields.
func parseStudent(id, name, ageText, className string) (*model.Student, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	ageText = strings.TrimSpace(ageText)
	className = strings.TrimSpace(className)

	if id == "" || name == "" || ageText == "" {
		return nil, ErrMissingField
	}

	age, err := strconv.ParseInt(ageText, 10, 32)
	if err != nil {
		return nil, ErrInvalidNumber
	}
	if age <= 0 {
		return nil, ErrInvalidAge
	}

	return &model.Student{ID: id, Name: name, Age: int(age), ClassName: className}, nil
}
