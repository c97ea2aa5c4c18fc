package repositories

import (
	"context"

	"github.com/studylegend/mastery-service/internal/models"
)

// UserRepository interface for user operations (read-only for this service;
// the mastery service is not the owner of account data)
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
