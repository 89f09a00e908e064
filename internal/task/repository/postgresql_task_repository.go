// Package repository provides data persistence implementations for tasks.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/taskmanager/internal/database"
	"github.com/allisson/taskmanager/internal/task/domain"

	apperrors "github.com/allisson/taskmanager/internal/errors"
)

// PostgreSQLTaskRepository handles task persistence for PostgreSQL
type PostgreSQLTaskRepository struct {
	db *sql.DB
}

// NewPostgreSQLTaskRepository creates a new PostgreSQLTaskRepository
func NewPostgreSQLTaskRepository(db *sql.DB) *PostgreSQLTaskRepository {
	return &PostgreSQLTaskRepository{
		db: db,
	}
}

// Create inserts a new task and fills in the database-assigned fields
func (r *PostgreSQLTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tasks (owner_id, title, description, status, created_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  RETURNING id, created_at`

	err := querier.QueryRowContext(
		ctx,
		query,
		task.OwnerID,
		task.Title,
		task.Description,
		string(task.Status),
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create task")
	}
	return nil
}

// GetByID retrieves a task by ID regardless of owner
func (r *PostgreSQLTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, status, created_at, updated_at
			  FROM tasks WHERE id = $1`

	task, err := scanTask(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get task by id")
	}

	return task, nil
}

// ListByOwner retrieves an identity's tasks newest-first
func (r *PostgreSQLTaskRepository) ListByOwner(
	ctx context.Context,
	ownerID int64,
	offset, limit int,
) ([]*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, status, created_at, updated_at
			  FROM tasks WHERE owner_id = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tasks")
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan task row")
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate task rows")
	}

	return tasks, nil
}

// Update persists the mutable task fields. The owner_id column is immutable
// and never part of the statement.
func (r *PostgreSQLTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tasks
			  SET title = $1, description = $2, status = $3, updated_at = NOW()
			  WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		string(task.Status),
		task.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update task")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task permanently
func (r *PostgreSQLTaskRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM tasks WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete task")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows so scanning is shared.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans a full task row including the nullable updated_at.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string
	var updatedAt sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&status,
		&task.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.Status(status)
	if updatedAt.Valid {
		task.UpdatedAt = &updatedAt.Time
	}

	return &task, nil
}
