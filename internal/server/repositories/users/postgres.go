// Package users provides the PostgreSQL-backed repository for user accounts.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wellnessdiary/api/internal/common"
	"github.com/wellnessdiary/api/internal/dbx"
	"github.com/wellnessdiary/api/internal/server/models"
)

const uniqueViolation = "23505"

const userColumns = `id, name, firstname, lastname, email, password_hash, role,
	COALESCE(reset_password_token, ''), reset_password_expires, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Role, &user.ResetPasswordToken, &user.ResetPasswordExpires,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// Create inserts a new account. A duplicate email maps to
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, firstname, lastname, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) UpdateNames(ctx context.Context, id, name, firstName, lastName string) (*models.User, error) {
	query :=
		`UPDATE users SET name = $2, firstname = $3, lastname = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + userColumns

	return scanUser(r.db.QueryRowContext(ctx, query, id, name, firstName, lastName))
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query :=
		`UPDATE users SET password_hash = $2,
			reset_password_token = NULL, reset_password_expires = NULL, updated_at = now()
		 WHERE id = $1`

	return r.exec(ctx, query, id, passwordHash)
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	query :=
		`UPDATE users SET reset_password_token = $2, reset_password_expires = $3, updated_at = now()
		 WHERE id = $1`

	return r.exec(ctx, query, id, tokenHash, expires)
}

func (r *PostgresRepository) GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE reset_password_token = $1 AND reset_password_expires > now()`
	return scanUser(r.db.QueryRowContext(ctx, query, tokenHash))
}

func (r *PostgresRepository) ClearResetToken(ctx context.Context, id string) error {
	query :=
		`UPDATE users SET reset_password_token = NULL, reset_password_expires = NULL, updated_at = now()
		 WHERE id = $1`

	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
