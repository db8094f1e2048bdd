package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/silviacristinaa/tasks/pkg/models"
	"github.com/silviacristinaa/tasks/pkg/storage"
)

type DBInterface interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	QueryRowx(query string, args ...interface{}) *sqlx.Row
	Exec(query string, args ...interface{}) (sql.Result, error)
}

type PostgresStore struct {
	db DBInterface
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Begin() (storage.Store, error) {
	if db, ok := s.db.(*sqlx.DB); ok {
		tx, err := db.Beginx()
		if err != nil {
			return nil, err
		}
		return &PostgresStore{db: tx}, nil
	}
	return nil, fmt.Errorf("cannot begin transaction on unknown type")
}

func (s *PostgresStore) Commit() error {
	if tx, ok := s.db.(*sqlx.Tx); ok {
		return tx.Commit()
	}
	return fmt.Errorf("cannot commit: not a transaction")
}

func (s *PostgresStore) Rollback() error {
	if tx, ok := s.db.(*sqlx.Tx); ok {
		return tx.Rollback()
	}
	return fmt.Errorf("cannot rollback: not a transaction")
}

func (s *PostgresStore) Close() error {
	if db, ok := s.db.(*sqlx.DB); ok {
		return db.Close()
	}
	return nil // No-op for *sqlx.Tx
}

// ListTasks retrieves one page of tasks ordered by id, plus the total count.
func (s *PostgresStore) ListTasks(offset, limit int) ([]models.Task, int, error) {
	tasks := []models.Task{}
	err := s.db.Select(&tasks, "SELECT * FROM tasks ORDER BY id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	var total int
	if err := s.db.Get(&total, "SELECT COUNT(*) FROM tasks"); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}
	return tasks, total, nil
}

// SearchTasks retrieves one page of tasks matching all supplied filters,
// ordered by id, plus the unpaged match count. Keyword matching uses ILIKE,
// so it is case-insensitive.
func (s *PostgresStore) SearchTasks(f storage.TaskFilter, offset, limit int) ([]models.Task, int, error) {
	where := []string{}
	args := []interface{}{}
	arg := func(v interface{}) int {
		args = append(args, v)
		return len(args)
	}

	if f.Keyword != nil {
		n := arg(*f.Keyword)
		where = append(where, fmt.Sprintf(
			"(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
	}
	if f.StartDateFrom != nil {
		where = append(where, fmt.Sprintf("start_date >= $%d", arg(*f.StartDateFrom)))
	}
	if f.StartDateTo != nil {
		where = append(where, fmt.Sprintf("start_date <= $%d", arg(*f.StartDateTo)))
	}
	if f.EndDateFrom != nil {
		where = append(where, fmt.Sprintf("end_date >= $%d", arg(*f.EndDateFrom)))
	}
	if f.EndDateTo != nil {
		where = append(where, fmt.Sprintf("end_date <= $%d", arg(*f.EndDateTo)))
	}
	if f.Priority != nil {
		where = append(where, fmt.Sprintf("priority = $%d", arg(*f.Priority)))
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", arg(*f.Status)))
	}
	if f.EmployeeID != nil {
		where = append(where, fmt.Sprintf("employee_id = $%d", arg(*f.EmployeeID)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.Get(&total, "SELECT COUNT(*) FROM tasks"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks by filters: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM tasks%s ORDER BY id LIMIT $%d OFFSET $%d", clause, arg(limit), arg(offset))
	tasks := []models.Task{}
	if err := s.db.Select(&tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask retrieves a task by id.
func (s *PostgresStore) GetTask(id int64) (models.Task, error) {
	var task models.Task
	err := s.db.Get(&task, "SELECT * FROM tasks WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return models.Task{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return task, nil
}

// SaveTask inserts a task when its id is zero, returning the assigned id;
// otherwise it overwrites the existing row in full.
func (s *PostgresStore) SaveTask(t models.Task) (int64, error) {
	if t.ID == 0 {
		var id int64
		err := s.db.QueryRowx(
			"INSERT INTO tasks (title, description, start_date, end_date, priority, status, employee_id) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id",
			t.Title, t.Description, t.StartDate, t.EndDate, t.Priority, t.Status, t.EmployeeID).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("save task: %w", err)
		}
		return id, nil
	}

	res, err := s.db.Exec(
		"UPDATE tasks SET title = $1, description = $2, start_date = $3, end_date = $4, priority = $5, status = $6, employee_id = $7 WHERE id = $8",
		t.Title, t.Description, t.StartDate, t.EndDate, t.Priority, t.Status, t.EmployeeID, t.ID)
	if err != nil {
		return 0, fmt.Errorf("update task %d: %w", t.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, storage.ErrNotFound
	}
	return t.ID, nil
}

// UpdateTaskStatus overwrites only the status column.
func (s *PostgresStore) UpdateTaskStatus(id int64, status models.Status) error {
	res, err := s.db.Exec("UPDATE tasks SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("update task %d status: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteTask removes the row matching id.
func (s *PostgresStore) DeleteTask(id int64) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
