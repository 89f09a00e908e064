package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/taskmanager/internal/task/domain"
	"github.com/allisson/taskmanager/internal/testutil"
)

func TestNewMySQLTaskRepository(t *testing.T) {
	db, _ := testutil.NewMockDB(t)

	repo := NewMySQLTaskRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMySQLTaskRepository_Create(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	task := testTask()

	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs(task.OwnerID, task.Title, task.Description, "pending").
		WillReturnResult(sqlmock.NewResult(3, 1))

	err := repo.Create(ctx, task)

	require.NoError(t, err)
	assert.Equal(t, int64(3), task.ID)
}

func TestMySQLTaskRepository_GetByID(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id =`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(taskColumns).AddRow(
			int64(1), int64(7), "write report", "quarterly report", "pending",
			time.Now(), nil,
		))

	task, err := repo.GetByID(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(7), task.OwnerID)
	assert.Equal(t, domain.StatusPending, task.Status)
}

func TestMySQLTaskRepository_GetByID_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id =`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	task, err := repo.GetByID(ctx, 99)

	assert.Nil(t, task)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestMySQLTaskRepository_ListByOwner(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE owner_id =`).
		WithArgs(int64(7), 10, 20).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(int64(5), int64(7), "write report", "", "done", now, nil))

	tasks, err := repo.ListByOwner(ctx, 7, 20, 10)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(5), tasks[0].ID)
}

func TestMySQLTaskRepository_Update(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	task := testTask()
	task.ID = 1

	mock.ExpectExec(`UPDATE tasks`).
		WithArgs(task.Title, task.Description, "pending", task.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(ctx, task)

	assert.NoError(t, err)
}

func TestMySQLTaskRepository_Delete(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM tasks WHERE id =`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(ctx, 1)

	assert.NoError(t, err)
}

func TestMySQLTaskRepository_Delete_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLTaskRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM tasks WHERE id =`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(ctx, 99)

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
