package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/acquisitions/internal/server/models"
)

// Repository is the data access contract for the users table.
//
// GetByID, List, Update and Delete never load the password column.
// Lookups that match no row return common.ErrorNotFound; email collisions on
// Create and Update return common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, update models.UserUpdate, updatedAt time.Time) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}
