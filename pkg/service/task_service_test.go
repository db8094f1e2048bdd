package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/silviacristinaa/tasks/internal/log"
	"github.com/silviacristinaa/tasks/pkg/models"
	"github.com/silviacristinaa/tasks/pkg/storage"
)

type stubLookup struct {
	employee models.Employee
	err      error
}

func (s stubLookup) FindByID(ctx context.Context, id int64) (models.Employee, error) {
	if s.err != nil {
		return models.Employee{}, s.err
	}
	employee := s.employee
	employee.ID = id
	return employee, nil
}

func activeLookup() stubLookup {
	return stubLookup{employee: models.Employee{Name: "Ana", Enabled: true}}
}

func date(year int, month time.Month, day int) models.Date {
	return models.NewDate(year, month, day)
}

func validTask() models.Task {
	return models.Task{
		Title:       "Quarterly report",
		Description: "Prepare the numbers",
		StartDate:   date(2023, time.March, 1),
		EndDate:     date(2023, time.March, 10),
		Priority:    models.HighPriority,
		Status:      models.PendingStatus,
		EmployeeID:  42,
	}
}

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	var svcErr *Error
	assert.True(t, errors.As(err, &svcErr), "expected a domain error, got %v", err)
	assert.Equal(t, kind, svcErr.Kind)
}

func TestCreate(t *testing.T) {
	t.Run("AssignsIDAndPersists", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		created, err := svc.Create(context.Background(), validTask())
		assert.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)

		stored, err := store.GetTask(created.ID)
		assert.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("RejectsEndDateBeforeStartDate", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		task := validTask()
		task.StartDate = date(2023, time.March, 10)
		task.EndDate = date(2023, time.March, 1)

		_, err := svc.Create(context.Background(), task)
		assertKind(t, err, KindInvalidInput)
		assert.Equal(t, "End date must be greater than start date", err.Error())
		assert.Equal(t, 0, store.TaskCount())
	})

	t.Run("AcceptsEqualDates", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		task := validTask()
		task.EndDate = task.StartDate

		_, err := svc.Create(context.Background(), task)
		assert.NoError(t, err)
	})

	t.Run("RejectsUnknownEmployee", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, stubLookup{err: ErrEmployeeNotFound}, log.GetLogger())

		_, err := svc.Create(context.Background(), validTask())
		assertKind(t, err, KindNotFound)
		assert.Equal(t, "Employee 42 not found", err.Error())
		assert.Equal(t, 0, store.TaskCount())
	})

	t.Run("RejectsInactiveEmployee", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, stubLookup{employee: models.Employee{Enabled: false}}, log.GetLogger())

		_, err := svc.Create(context.Background(), validTask())
		assertKind(t, err, KindInvalidInput)
		assert.Equal(t, "Employee 42 is inactive", err.Error())
		assert.Equal(t, 0, store.TaskCount())
	})

	t.Run("SurfacesDirectoryFailure", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, stubLookup{err: errors.New("connection refused")}, log.GetLogger())

		_, err := svc.Create(context.Background(), validTask())
		assertKind(t, err, KindUnavailable)

		var svcErr *Error
		assert.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "There was a problem consuming the employees external api", svcErr.Message)
		assert.Equal(t, 0, store.TaskCount())
	})

	t.Run("IgnoresIDFromInput", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		task := validTask()
		task.ID = 99

		created, err := svc.Create(context.Background(), task)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("ChangesOnlyStatus", func(t *testing.T) {
		store := storage.NewMockStore()
		seeded := store.Seed(validTask())[0]
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		err := svc.UpdateStatus(seeded.ID, models.CompletedStatus)
		assert.NoError(t, err)

		stored, err := store.GetTask(seeded.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.CompletedStatus, stored.Status)

		stored.Status = seeded.Status
		assert.Equal(t, seeded, stored)
	})

	t.Run("UnknownTask", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		err := svc.UpdateStatus(7, models.CompletedStatus)
		assertKind(t, err, KindNotFound)
		assert.Equal(t, "Task 7 not found", err.Error())
	})

	t.Run("SkipsEmployeeCheck", func(t *testing.T) {
		store := storage.NewMockStore()
		seeded := store.Seed(validTask())[0]
		svc := NewTaskService(store, stubLookup{err: errors.New("directory down")}, log.GetLogger())

		err := svc.UpdateStatus(seeded.ID, models.LateStatus)
		assert.NoError(t, err)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("ReplacesAllFieldsKeepingID", func(t *testing.T) {
		store := storage.NewMockStore()
		seeded := store.Seed(validTask())[0]
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		replacement := models.Task{
			Title:      "Rewritten",
			StartDate:  date(2023, time.April, 1),
			EndDate:    date(2023, time.April, 2),
			Priority:   models.LowPriority,
			Status:     models.InProgressStatus,
			EmployeeID: 7,
		}
		err := svc.Update(context.Background(), seeded.ID, replacement)
		assert.NoError(t, err)

		stored, err := store.GetTask(seeded.ID)
		assert.NoError(t, err)
		replacement.ID = seeded.ID
		assert.Equal(t, replacement, stored)
	})

	t.Run("UnknownTask", func(t *testing.T) {
		store := storage.NewMockStore()
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		err := svc.Update(context.Background(), 3, validTask())
		assertKind(t, err, KindNotFound)
	})

	t.Run("RunsCreateValidation", func(t *testing.T) {
		store := storage.NewMockStore()
		seeded := store.Seed(validTask())[0]
		svc := NewTaskService(store, stubLookup{employee: models.Employee{Enabled: false}}, log.GetLogger())

		err := svc.Update(context.Background(), seeded.ID, validTask())
		assertKind(t, err, KindInvalidInput)

		stored, getErr := store.GetTask(seeded.ID)
		assert.NoError(t, getErr)
		assert.Equal(t, seeded, stored)
	})
}

func TestDelete(t *testing.T) {
	t.Run("SecondDeleteFails", func(t *testing.T) {
		store := storage.NewMockStore()
		seeded := store.Seed(validTask())[0]
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		assert.NoError(t, svc.Delete(seeded.ID))
		err := svc.Delete(seeded.ID)
		assertKind(t, err, KindNotFound)
	})

	t.Run("UnknownTaskLeavesStoreUntouched", func(t *testing.T) {
		store := storage.NewMockStore()
		store.Seed(validTask())
		svc := NewTaskService(store, activeLookup(), log.GetLogger())

		err := svc.Delete(999)
		assertKind(t, err, KindNotFound)
		assert.Equal(t, 1, store.TaskCount())
	})
}

func TestFindAll(t *testing.T) {
	store := storage.NewMockStore()
	first := validTask()
	second := validTask()
	second.Title = "Second"
	store.Seed(first, second)
	svc := NewTaskService(store, activeLookup(), log.GetLogger())

	page, err := svc.FindAll(PageRequest{Page: 0, Size: 1})
	assert.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, 2, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "Quarterly report", page.Content[0].Title)

	page, err = svc.FindAll(PageRequest{Page: 1, Size: 1})
	assert.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, "Second", page.Content[0].Title)
}

func TestFindOneByID(t *testing.T) {
	store := storage.NewMockStore()
	seeded := store.Seed(validTask())[0]
	svc := NewTaskService(store, activeLookup(), log.GetLogger())

	found, err := svc.FindOneByID(seeded.ID)
	assert.NoError(t, err)
	assert.Equal(t, seeded, found)

	_, err = svc.FindOneByID(999)
	assertKind(t, err, KindNotFound)
	assert.Equal(t, "Task 999 not found", err.Error())
}

func TestFindByFilters(t *testing.T) {
	seed := func() (*storage.MockStore, *TaskService) {
		store := storage.NewMockStore()
		early := validTask()
		early.Title = "Early"
		early.StartDate = date(2023, time.January, 1)
		early.EndDate = date(2023, time.January, 31)
		late := validTask()
		late.Title = "Late"
		late.StartDate = date(2023, time.June, 1)
		late.EndDate = date(2023, time.June, 30)
		late.EmployeeID = 7
		store.Seed(early, late)
		return store, NewTaskService(store, activeLookup(), log.GetLogger())
	}

	t.Run("HalfStartDatePairRejected", func(t *testing.T) {
		_, svc := seed()
		from := date(2023, time.January, 1)
		_, err := svc.FindByFilters(storage.TaskFilter{StartDateFrom: &from}, PageRequest{Size: 10})
		assertKind(t, err, KindInvalidInput)
	})

	t.Run("HalfEndDatePairRejected", func(t *testing.T) {
		_, svc := seed()
		to := date(2023, time.June, 30)
		_, err := svc.FindByFilters(storage.TaskFilter{EndDateTo: &to}, PageRequest{Size: 10})
		assertKind(t, err, KindInvalidInput)
	})

	t.Run("ReversedRangeRejected", func(t *testing.T) {
		_, svc := seed()
		from := date(2023, time.June, 30)
		to := date(2023, time.January, 1)
		_, err := svc.FindByFilters(storage.TaskFilter{StartDateFrom: &from, StartDateTo: &to}, PageRequest{Size: 10})
		assertKind(t, err, KindInvalidInput)
		assert.Equal(t, "End date must be greater than start date", err.Error())
	})

	t.Run("CompleteRangeMatchesInclusively", func(t *testing.T) {
		_, svc := seed()
		from := date(2023, time.January, 1)
		to := date(2023, time.January, 31)
		page, err := svc.FindByFilters(storage.TaskFilter{StartDateFrom: &from, StartDateTo: &to}, PageRequest{Size: 10})
		assert.NoError(t, err)
		assert.Len(t, page.Content, 1)
		assert.Equal(t, "Early", page.Content[0].Title)
	})

	t.Run("FiltersAreANDCombined", func(t *testing.T) {
		_, svc := seed()
		keyword := "late"
		employeeID := int64(42)
		page, err := svc.FindByFilters(storage.TaskFilter{Keyword: &keyword, EmployeeID: &employeeID}, PageRequest{Size: 10})
		assert.NoError(t, err)
		assert.Empty(t, page.Content)
		assert.Equal(t, 0, page.TotalElements)
	})

	t.Run("NoFiltersReturnsEverything", func(t *testing.T) {
		_, svc := seed()
		page, err := svc.FindByFilters(storage.TaskFilter{}, PageRequest{Size: 10})
		assert.NoError(t, err)
		assert.Len(t, page.Content, 2)
	})
}
