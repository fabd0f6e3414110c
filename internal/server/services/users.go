// Package services implements the business rules of the wellness diary on
// top of the repository layer: account lifecycle, session issuance, the
// password-reset flow and diary-entry operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wellnessdiary/api/internal/common"
	"github.com/wellnessdiary/api/internal/server/auth"
	"github.com/wellnessdiary/api/internal/server/config"
	"github.com/wellnessdiary/api/internal/server/mailer"
	"github.com/wellnessdiary/api/internal/server/models"
	"github.com/wellnessdiary/api/internal/server/repositories/repomanager"
)

type UserService struct {
	db                         *sql.DB
	repomanager                repomanager.RepositoryManager
	mailer                     mailer.Mailer
	jwtSecret                  []byte
	tokenValidityDuration      time.Duration
	resetTokenValidityDuration time.Duration
	appBaseURL                 string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, mail mailer.Mailer, cfg *config.Config) *UserService {
	return &UserService{
		db:                         db,
		repomanager:                m,
		mailer:                     mail,
		jwtSecret:                  []byte(cfg.SecretKey),
		tokenValidityDuration:      cfg.TokenValidityDuration,
		resetTokenValidityDuration: cfg.ResetTokenValidityDuration,
		appBaseURL:                 strings.TrimRight(cfg.AppBaseURL, "/"),
	}
}

// Register creates an account. The display name is derived from the parts,
// never supplied directly. A duplicate email surfaces as
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Name:         strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         models.DefaultRole,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: user already exists", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a session token. An unknown
// email and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// UpdateProfile replaces the name parts that were supplied and re-derives
// the display name from the result.
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName string) (*models.User, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	name := strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName)

	return repo.UpdateNames(ctx, userID, name, user.FirstName, user.LastName)
}

// ForgotPassword starts the reset flow: a fresh single-use token is stored
// in hashed form with a short expiry and the raw token is mailed as a link.
// If the mail cannot be sent the token is cleared again so that no orphaned
// credential stays behind.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: user not found with this email", common.ErrorNotFound)
		}
		return common.ErrorInternal
	}

	raw, hashed, err := auth.NewResetToken()
	if err != nil {
		return common.ErrorInternal
	}

	expires := time.Now().Add(s.resetTokenValidityDuration)
	if err := repo.SetResetToken(ctx, user.ID, hashed, expires); err != nil {
		return common.ErrorInternal
	}

	resetURL := fmt.Sprintf("%s/auth/resetpassword?token=%s", s.appBaseURL, raw)

	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		_ = repo.ClearResetToken(ctx, user.ID)
		return fmt.Errorf("%w: email could not be sent", common.ErrorInternal)
	}

	return nil
}

// ResetPassword consumes a raw reset token: the stored digest must match
// and must not be expired. Storing the new password clears the token, so a
// second use of the same link fails.
func (s *UserService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByResetToken(ctx, auth.HashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrResetTokenExpired
		}
		return common.ErrorInternal
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	return repo.UpdatePassword(ctx, user.ID, hash)
}

// UpdatePassword changes the password of an authenticated user after
// verifying the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	return repo.UpdatePassword(ctx, userID, hash)
}
