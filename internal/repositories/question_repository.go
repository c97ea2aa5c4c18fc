package repositories

import (
	"context"

	"github.com/studylegend/mastery-service/internal/models"
)

// QuestionRepository interface for question-specific operations
type QuestionRepository interface {
	// Basic CRUD operations (authoring side)
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error // Soft delete; removes the history with the item

	// Query operations consumed by the scoring engine
	GetByOwner(ctx context.Context, ownerEmail string, filters QuestionFilters) ([]*models.Question, error)
	GetBySubject(ctx context.Context, subject, ownerEmail string) ([]*models.Question, error)
	GetBySubjectWeek(ctx context.Context, subject string, week int, ownerEmail string) ([]*models.Question, error)

	// AppendScoreEntry appends one attempt to the item at position itemIndex
	// within (subject, week, owner), creating a placeholder item when the
	// triple does not exist yet. The append is atomic with respect to
	// concurrent calls against the same item. Returns the updated item.
	AppendScoreEntry(ctx context.Context, subject string, week, itemIndex int, entry models.ScoreEntry, ownerEmail string) (*models.Question, error)

	// Statistics helpers
	CountByOwner(ctx context.Context, ownerEmail string) (int64, error)
}
