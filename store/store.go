// Package store persists student records and enforces their invariants:
// roll numbers are unique, parent contacts are stored as exactly 10 digits,
// and status is always Active or Inactive. The HTTP layer performs the same
// field checks first; the store re-validates so that no caller can persist
// a record that violates the invariants.
package store

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"school-admin/models"
)

var (
	// ErrNotFound is returned when no student matches the given ID.
	ErrNotFound = errors.New("student not found")

	// ErrDuplicateRollNo is returned when a create collides with an
	// existing roll number. Detection is atomic in the storage engine,
	// never an application-level check-then-write.
	ErrDuplicateRollNo = errors.New("roll number already exists")
)

// ValidationError reports a field-level problem detected at the storage
// boundary. Handlers map it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StudentStore is the persistence contract. PostgresStore backs the real
// server; MemoryStore backs tests.
type StudentStore interface {
	// List returns all students ordered by roll number ascending.
	// Returns an empty slice, never nil.
	List(ctx context.Context) ([]models.Student, error)

	// Get fetches one student by ID or returns ErrNotFound.
	Get(ctx context.Context, id string) (models.Student, error)

	// Create validates, normalizes the parent contact, and inserts a new
	// student. Returns ErrDuplicateRollNo on a roll number collision.
	Create(ctx context.Context, req models.CreateStudentRequest) (models.Student, error)

	// Update applies the supplied (non-empty) fields to an existing
	// student and refreshes its updated_at timestamp.
	Update(ctx context.Context, id string, req models.UpdateStudentRequest) (models.Student, error)

	// Delete removes a student permanently or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

var contactPattern = regexp.MustCompile(`^[0-9]{10}$`)

// NormalizeContact strips every non-digit character and keeps the last 10
// digits. Idempotent: a valid stored contact normalizes to itself.
func NormalizeContact(contact string) string {
	var digits strings.Builder
	for _, r := range contact {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}

// ValidContact reports whether a contact is exactly 10 ASCII digits.
func ValidContact(contact string) bool {
	return contactPattern.MatchString(contact)
}

// ValidStatus reports whether a status is one of the two allowed values.
func ValidStatus(status string) bool {
	return status == models.StatusActive || status == models.StatusInactive
}

// validateCreate is the store-side second line of defense for creates.
// It returns the normalized contact and the status to persist.
func validateCreate(req models.CreateStudentRequest) (contact, status string, err error) {
	if strings.TrimSpace(req.RollNo) == "" ||
		strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Class) == "" ||
		strings.TrimSpace(req.ParentContact) == "" {
		return "", "", &ValidationError{Message: "Missing required fields: rollNo, name, class, parentContact"}
	}

	contact = NormalizeContact(req.ParentContact)
	if !ValidContact(contact) {
		return "", "", &ValidationError{Message: "Parent contact must be a 10-digit number"}
	}

	status = req.Status
	if status == "" {
		status = models.StatusActive
	}
	if !ValidStatus(status) {
		return "", "", &ValidationError{Message: "Status must be Active or Inactive"}
	}

	return contact, status, nil
}

// validateUpdate checks the supplied fields of a partial update. It returns
// the normalized contact ("" when the contact is not being changed).
func validateUpdate(req models.UpdateStudentRequest) (contact string, err error) {
	if req.ParentContact != "" {
		contact = NormalizeContact(req.ParentContact)
		if !ValidContact(contact) {
			return "", &ValidationError{Message: "Parent contact must be a 10-digit number"}
		}
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return "", &ValidationError{Message: "Status must be Active or Inactive"}
	}
	return contact, nil
}
