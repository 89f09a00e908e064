package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/taskmanager/internal/database"
	"github.com/allisson/taskmanager/internal/task/domain"

	apperrors "github.com/allisson/taskmanager/internal/errors"
)

// MySQLTaskRepository handles task persistence for MySQL
type MySQLTaskRepository struct {
	db *sql.DB
}

// NewMySQLTaskRepository creates a new MySQLTaskRepository
func NewMySQLTaskRepository(db *sql.DB) *MySQLTaskRepository {
	return &MySQLTaskRepository{
		db: db,
	}
}

// Create inserts a new task and fills in the database-assigned ID
func (r *MySQLTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tasks (owner_id, title, description, status, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	result, err := querier.ExecContext(
		ctx,
		query,
		task.OwnerID,
		task.Title,
		task.Description,
		string(task.Status),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create task")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get inserted task id")
	}
	task.ID = id

	return nil
}

// GetByID retrieves a task by ID regardless of owner
func (r *MySQLTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, status, created_at, updated_at
			  FROM tasks WHERE id = ?`

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
func (r *MySQLTaskRepository) ListByOwner(
	ctx context.Context,
	ownerID int64,
	offset, limit int,
) ([]*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, status, created_at, updated_at
			  FROM tasks WHERE owner_id = ?
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

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
func (r *MySQLTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tasks
			  SET title = ?, description = ?, status = ?, updated_at = NOW()
			  WHERE id = ?`

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
func (r *MySQLTaskRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM tasks WHERE id = ?`

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
