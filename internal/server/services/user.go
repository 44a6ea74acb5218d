// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile updates, and
// issuing JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/swivl/traveldiary/internal/common"
	"github.com/swivl/traveldiary/internal/server/auth"
	"github.com/swivl/traveldiary/internal/server/config"
	"github.com/swivl/traveldiary/internal/server/models"
	"github.com/swivl/traveldiary/internal/server/repositories/repomanager"
)

// UserService provides account operations:
//   - Register: create a user and mint a token for it
//   - Login: verify credentials and mint a token
//   - Update / Delete: mutate the account row
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
	}
}

// Register creates a new user with a bcrypt-hashed password and returns the
// stored user together with a token embedding its identifier.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, Email: email, Password: string(hash)}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := auth.GenerateToken(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return u, token, nil
}

// Login verifies the email/password pair against the stored bcrypt hash and,
// on success, returns the user ID and a fresh token. A missing account and a
// wrong password both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (int64, string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, "", common.ErrInvalidCredentials
		}
		return 0, "", fmt.Errorf("error fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return 0, "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret)
	if err != nil {
		return 0, "", common.ErrInternal
	}

	return user.ID, token, nil
}

// Update rewrites username and email for the account matching id. The caller
// must be the account owner.
func (s *UserService) Update(ctx context.Context, id, callerID int64, newUsername, newEmail string) error {
	if id != callerID {
		return common.ErrForbidden
	}
	repo := s.repomanager.Users(s.db)
	return repo.Update(ctx, id, newUsername, newEmail)
}

// Delete removes the account matching id. The caller must be the account owner.
func (s *UserService) Delete(ctx context.Context, id, callerID int64) error {
	if id != callerID {
		return common.ErrForbidden
	}
	repo := s.repomanager.Users(s.db)
	return repo.Delete(ctx, id)
}
