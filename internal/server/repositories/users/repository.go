package users

import (
	"context"

	"github.com/swivl/traveldiary/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int64, username string, email string) error
	Delete(ctx context.Context, id int64) error
}
