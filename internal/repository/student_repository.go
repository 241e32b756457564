package repository

import (
	"errors"
	"sync"

	"github.com/stemsi/roster/internal/model"
)

var (
	ErrDuplicateID = errors.New("student with this ID already exists")
	ErrNotFound    = errors.New("student not found")
)

// StudentRepository holds the roster in insertion order.
// All methods are safe for concurrent use; returned slices are copies.
type StudentRepository struct {
	mu       sync.RWMutex
	students []model.Student
}

// NewStudentRepository creates an empty StudentRepository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{}
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(id string) (*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	s := r.students[i]
	return &s, nil
}

// Exists reports whether a student with the given ID is held.
func (r *StudentRepository) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(id) >= 0
}

// List returns every student in insertion order.
func (r *StudentRepository) List() []model.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

// Filter returns, in insertion order, the students for which keep is true.
func (r *StudentRepository) Filter(keep func(model.Student) bool) []model.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Student{}
	for _, s := range r.students {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Count returns the number of students held.
func (r *StudentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students)
}

// Create appends a student to the end of the roster.
func (r *StudentRepository) Create(s model.Student) ([]model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(s.ID) >= 0 {
		return nil, ErrDuplicateID
	}
	r.students = append(r.students, s)
	return r.snapshot(), nil
}

// Delete removes a student by ID and returns the remaining roster.
func (r *StudentRepository) Delete(id string) ([]model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	r.students = append(r.students[:i], r.students[i+1:]...)
	return r.snapshot(), nil
}

// Clear removes every student.
func (r *StudentRepository) Clear() []model.Student {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.students = nil
	return []model.Student{}
}

// indexOf must be called with mu held.
func (r *StudentRepository) indexOf(id string) int {
	for i, s := range r.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// snapshot must be called with mu held.
func (r *StudentRepository) snapshot() []model.Student {
	out := make([]model.Student, len(r.students))
	copy(out, r.students)
	return out
}
