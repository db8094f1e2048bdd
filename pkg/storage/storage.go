package storage

import (
	"github.com/pkg/errors"

	"github.com/silviacristinaa/tasks/pkg/models"
)

// ErrNotFound signals that no row matched the requested id.
var ErrNotFound = errors.New("not found")

// TaskFilter carries the optional search filters. Nil fields impose no
// constraint; supplied filters are AND-combined. Keyword matches
// case-insensitively as a substring of title or description.
type TaskFilter struct {
	Keyword       *string
	StartDateFrom *models.Date
	StartDateTo   *models.Date
	EndDateFrom   *models.Date
	EndDateTo     *models.Date
	Priority      *models.Priority
	Status        *models.Status
	EmployeeID    *int64
}

// Store defines the storage operations for the tasks service.
//
// Begin returns a Store bound to a transaction; Commit/Rollback only make
// sense on such a Store. List and search results are ordered by id ascending
// and return the unpaged match count alongside the requested page.
type Store interface {
	Begin() (Store, error)
	Commit() error
	Rollback() error
	Close() error

	ListTasks(offset, limit int) ([]models.Task, int, error)
	SearchTasks(filter TaskFilter, offset, limit int) ([]models.Task, int, error)
	GetTask(id int64) (models.Task, error)
	// SaveTask inserts when t.ID is zero and returns the assigned id;
	// otherwise it overwrites the row matching t.ID in full.
	SaveTask(t models.Task) (int64, error)
	UpdateTaskStatus(id int64, status models.Status) error
	DeleteTask(id int64) error
}
