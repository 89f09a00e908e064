// Package repository provides data persistence implementations for identities.
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

// PostgreSQLIdentityRepository handles identity persistence for PostgreSQL
type PostgreSQLIdentityRepository struct {
	db *sql.DB
}

// NewPostgreSQLIdentityRepository creates a new PostgreSQLIdentityRepository
func NewPostgreSQLIdentityRepository(db *sql.DB) *PostgreSQLIdentityRepository {
	return &PostgreSQLIdentityRepository{
		db: db,
	}
}

// Create inserts a new identity and fills in the database-assigned fields
func (r *PostgreSQLIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identities (username, email, phone, password_hash, password_key, created_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())
			  RETURNING id, created_at`

	err := querier.QueryRowContext(
		ctx,
		query,
		identity.Username,
		identity.Email,
		identity.Phone,
		identity.Credential.PasswordHash,
		identity.Credential.PasswordKey,
	).Scan(&identity.ID, &identity.CreatedAt)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrIdentityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create identity")
	}
	return nil
}

// GetByID retrieves an identity by ID
func (r *PostgreSQLIdentityRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, phone, password_hash, password_key, created_at, updated_at
			  FROM identities WHERE id = $1`

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
func (r *PostgreSQLIdentityRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, phone, password_hash, password_key, created_at, updated_at
			  FROM identities WHERE username = $1`

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
func (r *PostgreSQLIdentityRepository) ExistsByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM identities WHERE username = $1 OR email = $2)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check identity existence")
	}

	return exists, nil
}

// Update persists the mutable identity fields. The username column is
// immutable and never part of the statement.
func (r *PostgreSQLIdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE identities
			  SET email = $1, phone = $2, password_hash = $3, password_key = $4, updated_at = NOW()
			  WHERE id = $5`

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
		if isPostgreSQLUniqueViolation(err) {
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

// rowScanner abstracts *sql.Row so scanning is shared across queries.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanIdentity scans a full identity row including the nullable updated_at.
func scanIdentity(row rowScanner) (*domain.Identity, error) {
	var identity domain.Identity
	var updatedAt sql.NullTime

	err := row.Scan(
		&identity.ID,
		&identity.Username,
		&identity.Email,
		&identity.Phone,
		&identity.Credential.PasswordHash,
		&identity.Credential.PasswordKey,
		&identity.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		identity.UpdatedAt = &updatedAt.Time
	}

	return &identity, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
