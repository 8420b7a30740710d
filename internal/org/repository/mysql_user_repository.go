package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// MySQLUserRepository implements User persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new User.
func (m *MySQLUserRepository) Create(ctx context.Context, user *orgDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO users (id, email, name, password_hash, api_token_hash, is_active,
			  created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.APITokenHash,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a user by ID. Returns ErrUserNotFound if absent.
func (m *MySQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*orgDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	return scanUser(querier.QueryRowContext(ctx, query, userID))
}

// GetByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
func (m *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*orgDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	return scanUser(querier.QueryRowContext(ctx, query, email))
}

// GetByTokenHash retrieves a user by API token hash. Returns ErrUserNotFound if absent.
func (m *MySQLUserRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*orgDomain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE api_token_hash = ?`

	return scanUser(querier.QueryRowContext(ctx, query, tokenHash))
}

// Update modifies an existing user's mutable attributes.
func (m *MySQLUserRepository) Update(ctx context.Context, user *orgDomain.User) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE users
			  SET name = ?,
			      password_hash = ?,
			      api_token_hash = ?,
			      is_active = ?,
			      updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.Name,
		user.PasswordHash,
		user.APITokenHash,
		user.IsActive,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return orgDomain.ErrUserNotFound
	}
	return nil
}
