package entries

import (
	"context"

	"github.com/wellnessdiary/api/internal/server/apifeatures"
	"github.com/wellnessdiary/api/internal/server/models"
)

// Repository is the persistence contract for diary entries.
type Repository interface {
	Create(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error)
	GetByID(ctx context.Context, id string) (*models.DiaryEntry, error)
	Update(ctx context.Context, entry *models.DiaryEntry) (*models.DiaryEntry, error)
	Delete(ctx context.Context, id string) error
	// List returns one page of the user's entries, filtered and ordered by q.
	List(ctx context.Context, userID string, q *apifeatures.ListQuery) ([]*models.DiaryEntry, error)
	// Count returns the filtered total across all pages.
	Count(ctx context.Context, userID string, q *apifeatures.ListQuery) (int64, error)
}
