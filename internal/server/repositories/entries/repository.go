package entries

import (
	"context"

	"github.com/swivl/traveldiary/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error)
	GetByID(ctx context.Context, id int64) (*models.DiaryEntry, error)
	Update(ctx context.Context, id int64, location string, date string, text string) error
	Delete(ctx context.Context, id int64) error
}
