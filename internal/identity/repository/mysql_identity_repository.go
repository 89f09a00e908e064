package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/taskmanager/internal/database"
	"github.com/allisson/taskmanager/internal/identity/domain"

	apperrors "github.com/allisson/taskmanager/internal/errors"
)

// MySQLIdentityRepository handles identity persistence for MySQL
type MySQLIdentityRepository struct {
	db *sql.DB
}

// NewMySQLIdentityRepository creates a new MySQLIdentityRepository
func NewMySQLIdentityRepository(db *sql.DB) *MySQLIdentityRepository {
	return &MySQLIdentityRepository{
		db: db,
	}
}

// Create inserts a new identity and fills in the database-assigned ID
func (r *MySQLIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identities (username, email, phone, password_hash, password_key, created_at)
			  VALUES (?, ?, ?, ?, ?, NOW())`

	result, err := querier.ExecContext(
		ctx,
		query,
		identity.Username,
		identity.Email,
		identity.Phone,
		identity.Credential.PasswordHash,
		identity.Credential.PasswordKey,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrIdentityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create identity")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get inserted identity id")
	}
	identity.ID = id

	return nil
}

// GetByID retrieves an identity by ID
func (r *MySQLIdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, phone, password_hash, password_key, created_at, updated_at
			  FROM identities WHERE id = ?`

	identity, err := scanIdentity(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get identity by id")
	}

	return identity, nil
}

// GetByUsername retrieves an identity by username
func (r *MySQLIdentityRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, phone, password_hash, password_key, created_at, updated_at
			  FROM identities WHERE username = ?`

	identity, err := scanIdentity(querier.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get identity by username")
	}

	return identity, nil
}

// ExistsByUsernameOrEmail reports whether an identity already holds the
// username or the email
func (r *MySQLIdentityRepository) ExistsByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM identities WHERE username = ? OR email = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check identity existence")
	}

	return exists, nil
}

// Update persists the mutable identity fields. The username column is
// immutable and never part of the statement.
func (r *MySQLIdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE identities
			  SET email = ?, phone = ?, password_hash = ?, password_key = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		identity.Email,
		identity.Phone,
		identity.Credential.PasswordHash,
		identity.Credential.PasswordKey,
		identity.ID,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrIdentityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update identity")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrIdentityNotFound
	}

	return nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
