package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/taskmanager/internal/errors"
	"github.com/allisson/taskmanager/internal/identity/domain"
	"github.com/allisson/taskmanager/internal/testutil"
)

var identityColumns = []string{
	"id", "username", "email", "phone", "password_hash", "password_key", "created_at", "updated_at",
}

func testIdentity() *domain.Identity {
	return &domain.Identity{
		Username: "alice",
		Email:    "alice@example.com",
		Phone:    "+15550100",
		Credential: domain.Credential{
			PasswordHash: []byte("hash-bytes"),
			PasswordKey:  []byte("key-bytes"),
		},
	}
}

func TestNewPostgreSQLIdentityRepository(t *testing.T) {
	db, _ := testutil.NewMockDB(t)

	repo := NewPostgreSQLIdentityRepository(db)
	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPostgreSQLIdentityRepository_Create(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	identity := testIdentity()
	createdAt := time.Now()

	mock.ExpectQuery(`INSERT INTO identities`).
		WithArgs(
			identity.Username,
			identity.Email,
			identity.Phone,
			identity.Credential.PasswordHash,
			identity.Credential.PasswordKey,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt))

	err := repo.Create(ctx, identity)

	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.ID)
	assert.WithinDuration(t, createdAt, identity.CreatedAt, time.Second)
}

func TestPostgreSQLIdentityRepository_Create_Duplicate(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	identity := testIdentity()

	mock.ExpectQuery(`INSERT INTO identities`).
		WithArgs(
			identity.Username,
			identity.Email,
			identity.Phone,
			identity.Credential.PasswordHash,
			identity.Credential.PasswordKey,
		).
		WillReturnError(apperrors.New(
			`pq: duplicate key value violates unique constraint "identities_username_key"`,
		))

	err := repo.Create(ctx, identity)

	assert.ErrorIs(t, err, domain.ErrIdentityAlreadyExists)
}

func TestPostgreSQLIdentityRepository_GetByID(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	createdAt := time.Now().Add(-time.Hour)
	updatedAt := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM identities WHERE id =`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(identityColumns).AddRow(
			int64(1), "alice", "alice@example.com", "+15550100",
			[]byte("hash-bytes"), []byte("key-bytes"), createdAt, updatedAt,
		))

	identity, err := repo.GetByID(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.ID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, []byte("hash-bytes"), identity.Credential.PasswordHash)
	assert.Equal(t, []byte("key-bytes"), identity.Credential.PasswordKey)
	require.NotNil(t, identity.UpdatedAt)
	assert.WithinDuration(t, updatedAt, *identity.UpdatedAt, time.Second)
}

func TestPostgreSQLIdentityRepository_GetByID_NullUpdatedAt(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM identities WHERE id =`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(identityColumns).AddRow(
			int64(1), "alice", "alice@example.com", "+15550100",
			[]byte("hash-bytes"), []byte("key-bytes"), time.Now(), nil,
		))

	identity, err := repo.GetByID(ctx, 1)

	require.NoError(t, err)
	assert.Nil(t, identity.UpdatedAt)
}

func TestPostgreSQLIdentityRepository_GetByID_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM identities WHERE id =`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(identityColumns))

	identity, err := repo.GetByID(ctx, 42)

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLIdentityRepository_GetByUsername(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM identities WHERE username =`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(identityColumns).AddRow(
			int64(1), "alice", "alice@example.com", "+15550100",
			[]byte("hash-bytes"), []byte("key-bytes"), time.Now(), nil,
		))

	identity, err := repo.GetByUsername(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestPostgreSQLIdentityRepository_GetByUsername_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM identities WHERE username =`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(identityColumns))

	identity, err := repo.GetByUsername(ctx, "ghost")

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestPostgreSQLIdentityRepository_ExistsByUsernameOrEmail(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice", "alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "alice", "alice@example.com")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgreSQLIdentityRepository_Update(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	identity := testIdentity()
	identity.ID = 1

	mock.ExpectExec(`UPDATE identities`).
		WithArgs(
			identity.Email,
			identity.Phone,
			identity.Credential.PasswordHash,
			identity.Credential.PasswordKey,
			identity.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(ctx, identity)

	assert.NoError(t, err)
}

func TestPostgreSQLIdentityRepository_Update_NotFound(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	identity := testIdentity()
	identity.ID = 42

	mock.ExpectExec(`UPDATE identities`).
		WithArgs(
			identity.Email,
			identity.Phone,
			identity.Credential.PasswordHash,
			identity.Credential.PasswordKey,
			identity.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(ctx, identity)

	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestPostgreSQLIdentityRepository_Update_DuplicateEmail(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPostgreSQLIdentityRepository(db)
	ctx := context.Background()

	identity := testIdentity()
	identity.ID = 1

	mock.ExpectExec(`UPDATE identities`).
		WithArgs(
			identity.Email,
			identity.Phone,
			identity.Credential.PasswordHash,
			identity.Credential.PasswordKey,
			identity.ID,
		).
		WillReturnError(apperrors.New(
			`pq: duplicate key value violates unique constraint "identities_email_key"`,
		))

	err := repo.Update(ctx, identity)

	assert.ErrorIs(t, err, domain.ErrIdentityAlreadyExists)
}
