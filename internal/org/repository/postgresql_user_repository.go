package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/fleet/internal/database"
	apperrors "github.com/allisson/fleet/internal/errors"
	orgDomain "github.com/allisson/fleet/internal/org/domain"
)

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, api_token_hash, is_active, created_at, updated_at`

// Create inserts a new User.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *orgDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (id, email, name, password_hash, api_token_hash, is_active,
			  created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

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
func (p *PostgreSQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*orgDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUser(querier.QueryRowContext(ctx, query, userID))
}

// GetByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
func (p *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*orgDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUser(querier.QueryRowContext(ctx, query, email))
}

// GetByTokenHash retrieves a user by API token hash. Returns ErrUserNotFound if absent.
func (p *PostgreSQLUserRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*orgDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE api_token_hash = $1`

	return scanUser(querier.QueryRowContext(ctx, query, tokenHash))
}

// Update modifies an existing user's mutable attributes.
func (p *PostgreSQLUserRepository) Update(ctx context.Context, user *orgDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE users
			  SET name = $1,
			      password_hash = $2,
			      api_token_hash = $3,
			      is_active = $4,
			      updated_at = $5
			  WHERE id = $6`

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

func scanUser(row rowScanner) (*orgDomain.User, error) {
	var user orgDomain.User

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.APITokenHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	return &user, nil
}
