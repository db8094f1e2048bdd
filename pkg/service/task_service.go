package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/silviacristinaa/tasks/pkg/models"
	"github.com/silviacristinaa/tasks/pkg/storage"
)

const msgEmployeeDirectoryFailure = "There was a problem consuming the employees external api"

// Logger defines the logging interface for TaskService
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// EmployeeLookup resolves an employee in the external directory. It returns
// ErrEmployeeNotFound when the directory has no such employee; any other
// error means the directory could not be consumed.
type EmployeeLookup interface {
	FindByID(ctx context.Context, id int64) (models.Employee, error)
}

// PageRequest is zero-based pagination input.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) offset() int {
	return p.Page * p.Size
}

// TaskPage is one page of tasks plus the unpaged total.
type TaskPage struct {
	Content       []models.Task
	Page          int
	Size          int
	TotalElements int
	TotalPages    int
}

// TaskService orchestrates task use cases: validation, the employee-directory
// gate on writes, and store access. Each mutating use case runs inside a
// store transaction so a persistence failure leaves no partial state.
type TaskService struct {
	store     storage.Store
	employees EmployeeLookup
	logger    Logger
}

func NewTaskService(store storage.Store, employees EmployeeLookup, logger Logger) *TaskService {
	return &TaskService{
		store:     store,
		employees: employees,
		logger:    logger,
	}
}

// FindAll returns one page of all tasks, ordered by id.
func (s *TaskService) FindAll(page PageRequest) (TaskPage, error) {
	tasks, total, err := s.store.ListTasks(page.offset(), page.Size)
	if err != nil {
		s.logger.Errorf("Failed to list tasks: %v", err)
		return TaskPage{}, errors.Wrap(err, "list tasks")
	}
	return newTaskPage(tasks, page, total), nil
}

// FindByFilters returns one page of tasks matching the supplied filters.
// Each of the two optional date ranges must be supplied as a complete,
// ordered pair; the two ranges are validated identically and independently.
func (s *TaskService) FindByFilters(filter storage.TaskFilter, page PageRequest) (TaskPage, error) {
	if err := validateFilterDatePair(filter.StartDateFrom, filter.StartDateTo); err != nil {
		return TaskPage{}, err
	}
	if err := validateFilterDatePair(filter.EndDateFrom, filter.EndDateTo); err != nil {
		return TaskPage{}, err
	}
	tasks, total, err := s.store.SearchTasks(filter, page.offset(), page.Size)
	if err != nil {
		s.logger.Errorf("Failed to search tasks: %v", err)
		return TaskPage{}, errors.Wrap(err, "search tasks")
	}
	return newTaskPage(tasks, page, total), nil
}

// FindOneByID returns the task matching id.
func (s *TaskService) FindOneByID(id int64) (models.Task, error) {
	return s.findByID(s.store, id)
}

// Create validates the dates and the assigned employee, then persists a new
// task and returns it with its assigned id.
func (s *TaskService) Create(ctx context.Context, t models.Task) (task models.Task, err error) {
	if err = validateDateOrder(t.StartDate, t.EndDate); err != nil {
		return models.Task{}, err
	}
	if err = s.verifyEmployee(ctx, t.EmployeeID); err != nil {
		return models.Task{}, err
	}

	txStore, err := s.store.Begin()
	if err != nil {
		s.logger.Errorf("Failed to begin transaction for Create: %v", err)
		return models.Task{}, errors.Wrap(err, "begin transaction")
	}
	defer s.endTx(txStore, &err)

	t.ID = 0
	id, err := txStore.SaveTask(t)
	if err != nil {
		s.logger.Errorf("Failed to save task: %v", err)
		return models.Task{}, errors.Wrap(err, "save task")
	}
	t.ID = id
	s.logger.Infof("Created task %d for employee %d", id, t.EmployeeID)
	return t, nil
}

// UpdateStatus overwrites only the status of an existing task. The employee
// is not re-validated on this path.
func (s *TaskService) UpdateStatus(id int64, status models.Status) (err error) {
	txStore, err := s.store.Begin()
	if err != nil {
		s.logger.Errorf("Failed to begin transaction for UpdateStatus: %v", err)
		return errors.Wrap(err, "begin transaction")
	}
	defer s.endTx(txStore, &err)

	if _, err = s.findByID(txStore, id); err != nil {
		return err
	}
	if err = txStore.UpdateTaskStatus(id, status); err != nil {
		s.logger.Errorf("Failed to update task %d status to %s: %v", id, status, err)
		return errors.Wrapf(err, "update task %d status", id)
	}
	s.logger.Infof("Updated task %d status to %s", id, status)
	return nil
}

// Update replaces an existing task in full, running the same validation as
// Create. The id is taken from the path, never from the payload.
func (s *TaskService) Update(ctx context.Context, id int64, t models.Task) (err error) {
	if _, err = s.findByID(s.store, id); err != nil {
		return err
	}
	if err = validateDateOrder(t.StartDate, t.EndDate); err != nil {
		return err
	}
	if err = s.verifyEmployee(ctx, t.EmployeeID); err != nil {
		return err
	}

	txStore, err := s.store.Begin()
	if err != nil {
		s.logger.Errorf("Failed to begin transaction for Update: %v", err)
		return errors.Wrap(err, "begin transaction")
	}
	defer s.endTx(txStore, &err)

	t.ID = id
	if _, err = txStore.SaveTask(t); err != nil {
		s.logger.Errorf("Failed to update task %d: %v", id, err)
		return errors.Wrapf(err, "update task %d", id)
	}
	s.logger.Infof("Updated task %d", id)
	return nil
}

// Delete removes an existing task.
func (s *TaskService) Delete(id int64) (err error) {
	txStore, err := s.store.Begin()
	if err != nil {
		s.logger.Errorf("Failed to begin transaction for Delete: %v", err)
		return errors.Wrap(err, "begin transaction")
	}
	defer s.endTx(txStore, &err)

	if _, err = s.findByID(txStore, id); err != nil {
		return err
	}
	if err = txStore.DeleteTask(id); err != nil {
		s.logger.Errorf("Failed to delete task %d: %v", id, err)
		return errors.Wrapf(err, "delete task %d", id)
	}
	s.logger.Infof("Deleted task %d", id)
	return nil
}

func (s *TaskService) findByID(store storage.Store, id int64) (models.Task, error) {
	task, err := store.GetTask(id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Task{}, notFound("Task %d not found", id)
	}
	if err != nil {
		s.logger.Errorf("Failed to get task %d: %v", id, err)
		return models.Task{}, errors.Wrapf(err, "get task %d", id)
	}
	return task, nil
}

func (s *TaskService) verifyEmployee(ctx context.Context, employeeID int64) error {
	employee, err := s.employees.FindByID(ctx, employeeID)
	if errors.Is(err, ErrEmployeeNotFound) {
		return notFound("Employee %d not found", employeeID)
	}
	if err != nil {
		s.logger.Errorf("%s: employee %d: %v", msgEmployeeDirectoryFailure, employeeID, err)
		return unavailable(err, msgEmployeeDirectoryFailure)
	}
	if !employee.Enabled {
		return invalidInput("Employee %d is inactive", employeeID)
	}
	return nil
}

func (s *TaskService) endTx(txStore storage.Store, err *error) {
	if *err != nil {
		if rollbackErr := txStore.Rollback(); rollbackErr != nil {
			s.logger.Errorf("Failed to rollback: %v", rollbackErr)
		}
	} else {
		if commitErr := txStore.Commit(); commitErr != nil {
			s.logger.Errorf("Failed to commit: %v", commitErr)
			*err = commitErr
		}
	}
}

func newTaskPage(tasks []models.Task, page PageRequest, total int) TaskPage {
	totalPages := 0
	if page.Size > 0 {
		totalPages = (total + page.Size - 1) / page.Size
	}
	return TaskPage{
		Content:       tasks,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
