package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/dbx"
	"github.com/dmitrijs2005/acquisitions/internal/logging"
	"github.com/dmitrijs2005/acquisitions/internal/server/auth"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/dmitrijs2005/acquisitions/internal/server/repositories/repomanager"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	logger      logging.Logger
	now         func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) logFailure(ctx context.Context, msg string, err error) {
	if common.KindOf(err) == common.KindUnknown {
		s.logger.Error(ctx, msg, "error", err)
	}
}

// GetAll returns every user ordered by id, without passwords.
func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		s.logFailure(ctx, "error listing users", err)
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, "error getting user", err)
		return nil, err
	}
	return user, nil
}

// Update checks that the user exists and applies update in one transaction.
// A plain-text password in update is hashed before it is stored.
func (s *UserService) Update(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			s.logger.Error(ctx, "error hashing password", "error", err)
			return nil, err
		}
		update.Password = &hash
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}

		u, err := repo.Update(ctx, id, update, s.now())
		if err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "error updating user", err)
		return nil, err
	}

	s.logger.Info(ctx, "user updated", "user_id", id)
	return updated, nil
}

// Delete removes the user in one transaction and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	var deleted *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}

		u, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		deleted = u
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "error deleting user", err)
		return nil, err
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return deleted, nil
}
