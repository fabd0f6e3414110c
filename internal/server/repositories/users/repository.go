package users

import (
	"context"
	"time"

	"github.com/wellnessdiary/api/internal/server/models"
)

// Repository is the persistence contract for user accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateNames(ctx context.Context, id, name, firstName, lastName string) (*models.User, error)
	// UpdatePassword stores a new password hash and clears any pending
	// reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	// GetByResetToken resolves a stored reset-token digest that has not yet
	// expired; expired or unknown digests yield common.ErrorNotFound.
	GetByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	ClearResetToken(ctx context.Context, id string) error
}
