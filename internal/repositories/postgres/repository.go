package postgres

import (
	"context"

	"github.com/studylegend/mastery-service/internal/repositories"
	"gorm.io/gorm"
)

// Repository is the PostgreSQL-backed implementation of the aggregate store
// contract.
type Repository struct {
	db       *gorm.DB
	question repositories.QuestionRepository
	user     repositories.UserRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:       db,
		question: NewQuestionPostgreSQL(db),
		user:     NewUserPostgreSQL(db),
	}
}

func (r *Repository) Question() repositories.QuestionRepository {
	return r.question
}

func (r *Repository) User() repositories.UserRepository {
	return r.user
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
