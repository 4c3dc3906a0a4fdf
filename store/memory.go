package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"school-admin/models"
)

// MemoryStore is an in-process StudentStore used by tests. It enforces the
// same invariants as PostgresStore: the mutex is held across the roll number
// check and the insert, so concurrent creates cannot both slip past it.
type MemoryStore struct {
	mu       sync.RWMutex
	students map[string]models.Student
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{students: make(map[string]models.Student)}
}

func (m *MemoryStore) List(_ context.Context) ([]models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].RollNo < students[j].RollNo
	})
	return students, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.students[id]
	if !ok {
		return models.Student{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Create(_ context.Context, req models.CreateStudentRequest) (models.Student, error) {
	contact, status, err := validateCreate(req)
	if err != nil {
		return models.Student{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rollNo := strings.TrimSpace(req.RollNo)
	for _, existing := range m.students {
		if existing.RollNo == rollNo {
			return models.Student{}, ErrDuplicateRollNo
		}
	}

	now := time.Now().UTC()
	s := models.Student{
		ID:            uuid.New().String(),
		RollNo:        rollNo,
		Name:          strings.TrimSpace(req.Name),
		Class:         strings.TrimSpace(req.Class),
		ParentContact: contact,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.students[s.ID] = s
	return s, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, req models.UpdateStudentRequest) (models.Student, error) {
	contact, err := validateUpdate(req)
	if err != nil {
		return models.Student{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.students[id]
	if !ok {
		return models.Student{}, ErrNotFound
	}

	if strings.TrimSpace(req.Name) != "" {
		s.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Class) != "" {
		s.Class = strings.TrimSpace(req.Class)
	}
	if contact != "" {
		s.ParentContact = contact
	}
	if req.Status != "" {
		s.Status = req.Status
	}
	s.UpdatedAt = time.Now().UTC()

	m.students[id] = s
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return ErrNotFound
	}
	delete(m.students, id)
	return nil
}
