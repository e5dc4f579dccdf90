package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/optiflow/internal/productivity/domain/task"
	sharedPersistence "github.com/felixgeelhaar/optiflow/internal/shared/infrastructure/persistence"
)

const taskColumns = `id, name, description, category, priority, status, bucket, due_date, estimated_hours, created_at, updated_at`

// SQLiteTaskRepository implements task.Repository using SQLite.
// List order is kept in the position column.
type SQLiteTaskRepository struct {
	dbConn *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(dbConn *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{dbConn: dbConn}
}

// Save inserts the task at the end of the list or updates it in place.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *task.Task) error {
	rec := ToRecord(t)

	var dueDate sql.NullString
	if rec.DueDate != "" {
		dueDate = sql.NullString{String: rec.DueDate, Valid: true}
	}

	_, err := sharedPersistence.Executor(ctx, r.dbConn).ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM tasks))
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			category = excluded.category,
			priority = excluded.priority,
			status = excluded.status,
			bucket = excluded.bucket,
			due_date = excluded.due_date,
			estimated_hours = excluded.estimated_hours,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Name, rec.Description, rec.Category,
		rec.Priority, rec.Status, rec.Bucket, dueDate, rec.EstimatedHours,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id string) (*task.Task, error) {
	row := sharedPersistence.Executor(ctx, r.dbConn).QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// FindAll retrieves all tasks in list order.
func (r *SQLiteTaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	rows, err := sharedPersistence.Executor(ctx, r.dbConn).QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task from the database.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, id string) error {
	result, err := sharedPersistence.Executor(ctx, r.dbConn).ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if n == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// Ping verifies the connection is still alive.
func (r *SQLiteTaskRepository) Ping(ctx context.Context) error {
	return r.dbConn.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*task.Task, error) {
	var (
		rec                  TaskRecord
		dueDate              sql.NullString
		createdAt, updatedAt string
	)
	err := s.Scan(
		&rec.ID, &rec.Name, &rec.Description, &rec.Category,
		&rec.Priority, &rec.Status, &rec.Bucket, &dueDate, &rec.EstimatedHours,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		rec.DueDate = dueDate.String
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("invalid updated_at: %w", err)
	}

	return rec.ToTask()
}
