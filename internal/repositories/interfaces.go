package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository is the aggregate store contract the engine depends on. Any
// concrete storage implementation can satisfy it; the engine never reaches
// past these interfaces.
type Repository interface {
	Question() QuestionRepository
	User() UserRepository

	// WithTransaction runs fn against a transactional view of the store.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Subject   *string `json:"subject"`
	Week      *int    `json:"week"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "created_at", "last_practiced", "week"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

// ===== ERROR HELPERS =====

var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err represents a missing record, from
// either this package or the underlying GORM layer.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
