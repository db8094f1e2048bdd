package storage

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/silviacristinaa/tasks/pkg/models"
)

// MockStore implements Store with in-memory storage, for tests.
type MockStore struct {
	tasks  []models.Task
	nextID int64
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

// Seed inserts tasks directly, assigning ids, bypassing any validation.
func (m *MockStore) Seed(tasks ...models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		m.nextID++
		t.ID = m.nextID
		m.tasks = append(m.tasks, t)
		out = append(out, t)
	}
	return out
}

// TaskCount reports the number of stored rows, for persistence assertions.
func (m *MockStore) TaskCount() int {
	return len(m.tasks)
}

func (m *MockStore) Begin() (Store, error) {
	return m, nil
}

func (m *MockStore) Commit() error {
	return nil
}

func (m *MockStore) Rollback() error {
	return nil
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) ListTasks(offset, limit int) ([]models.Task, int, error) {
	return paginate(m.sorted(), offset, limit), len(m.tasks), nil
}

func (m *MockStore) SearchTasks(filter TaskFilter, offset, limit int) ([]models.Task, int, error) {
	matched := []models.Task{}
	for _, t := range m.sorted() {
		if matches(t, filter) {
			matched = append(matched, t)
		}
	}
	return paginate(matched, offset, limit), len(matched), nil
}

func (m *MockStore) GetTask(id int64) (models.Task, error) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, ErrNotFound
}

func (m *MockStore) SaveTask(t models.Task) (int64, error) {
	if t.ID == 0 {
		m.nextID++
		t.ID = m.nextID
		m.tasks = append(m.tasks, t)
		return t.ID, nil
	}
	for i, existing := range m.tasks {
		if existing.ID == t.ID {
			m.tasks[i] = t
			return t.ID, nil
		}
	}
	return 0, errors.Wrapf(ErrNotFound, "task %d", t.ID)
}

func (m *MockStore) UpdateTaskStatus(id int64, status models.Status) error {
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStore) DeleteTask(id int64) error {
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStore) sorted() []models.Task {
	out := make([]models.Task, len(m.tasks))
	copy(out, m.tasks)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paginate(tasks []models.Task, offset, limit int) []models.Task {
	if offset >= len(tasks) {
		return []models.Task{}
	}
	end := offset + limit
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[offset:end]
}

func matches(t models.Task, f TaskFilter) bool {
	if f.Keyword != nil {
		kw := strings.ToLower(*f.Keyword)
		if !strings.Contains(strings.ToLower(t.Title), kw) &&
			!strings.Contains(strings.ToLower(t.Description), kw) {
			return false
		}
	}
	if f.StartDateFrom != nil && t.StartDate.Before(*f.StartDateFrom) {
		return false
	}
	if f.StartDateTo != nil && f.StartDateTo.Before(t.StartDate) {
		return false
	}
	if f.EndDateFrom != nil && t.EndDate.Before(*f.EndDateFrom) {
		return false
	}
	if f.EndDateTo != nil && f.EndDateTo.Before(t.EndDate) {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.EmployeeID != nil && t.EmployeeID != *f.EmployeeID {
		return false
	}
	return true
}
