// Package services implements the account use cases on top of the
// repositories: registration, credential checks and user management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/logging"
	"github.com/dmitrijs2005/acquisitions/internal/server/auth"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/dmitrijs2005/acquisitions/internal/server/repositories/repomanager"
)

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	logger      logging.Logger
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, logger logging.Logger) *AuthService {
	return &AuthService{db: db, repomanager: m, hasher: hasher, logger: logger}
}

// CreateUser registers a new account. The returned record still carries the
// password hash; callers must project it before it leaves the server.
func (s *AuthService) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "error looking up user by email", "error", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error(ctx, "error hashing password", "error", err)
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	user, err := repo.Create(ctx, &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.logger.Error(ctx, "error creating user", "error", err)
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// AuthenticateUser returns common.ErrorNotFound for an unknown email and
// common.ErrInvalidPassword for a wrong password.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "error looking up user by email", "error", err)
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		if !errors.Is(err, common.ErrInvalidPassword) {
			s.logger.Error(ctx, "error comparing password", "error", err)
		}
		return nil, err
	}

	s.logger.Info(ctx, "user authenticated", "user_id", user.ID)
	return user, nil
}
