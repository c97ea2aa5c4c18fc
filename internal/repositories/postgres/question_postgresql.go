package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/studylegend/mastery-service/internal/models"
	"github.com/studylegend/mastery-service/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Create(question).Error
}

func (q QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (q QuestionPostgreSQL) Update(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Save(question).Error
}

func (q QuestionPostgreSQL) Delete(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Delete(&models.Question{}, id).Error
}

func (q QuestionPostgreSQL) GetByOwner(ctx context.Context, ownerEmail string, filters repositories.QuestionFilters) ([]*models.Question, error) {
	var questions []*models.Question

	query := q.db.WithContext(ctx).Model(&models.Question{}).Where("owner_email = ?", ownerEmail)
	query = q.applyFilters(query, filters)

	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q QuestionPostgreSQL) GetBySubject(ctx context.Context, subject, ownerEmail string) ([]*models.Question, error) {
	var questions []*models.Question
	if err := q.db.WithContext(ctx).
		Where("subject = ? AND owner_email = ?", subject, ownerEmail).
		Order("week asc, position asc").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q QuestionPostgreSQL) GetBySubjectWeek(ctx context.Context, subject string, week int, ownerEmail string) ([]*models.Question, error) {
	var questions []*models.Question
	if err := q.db.WithContext(ctx).
		Where("subject = ? AND week = ? AND owner_email = ?", subject, week, ownerEmail).
		Order("position asc").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// AppendScoreEntry does the read-modify-write under a row lock so two
// concurrent attempts against the same item cannot lose an update. A missing
// (subject, week, position) triple gets a placeholder item, matching the
// create-on-miss behavior of the original store.
func (q QuestionPostgreSQL) AppendScoreEntry(ctx context.Context, subject string, week, itemIndex int, entry models.ScoreEntry, ownerEmail string) (*models.Question, error) {
	var updated *models.Question

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("subject = ? AND week = ? AND owner_email = ? AND position = ?",
				subject, week, ownerEmail, itemIndex).
			First(&question).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			question = models.Question{
				Subject:    subject,
				Week:       week,
				OwnerEmail: ownerEmail,
				Position:   itemIndex,
				Scores:     datatypes.NewJSONSlice([]models.ScoreEntry{}),
			}
		} else if err != nil {
			return fmt.Errorf("failed to load question for append: %w", err)
		}

		question.Scores = append(question.Scores, entry)
		ts := entry.Timestamp
		question.LastPracticed = &ts

		if err := tx.Save(&question).Error; err != nil {
			return fmt.Errorf("failed to save score entry: %w", err)
		}

		updated = &question
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (q QuestionPostgreSQL) CountByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&models.Question{}).
		Where("owner_email = ?", ownerEmail).
		Count(&count).Error
	return count, err
}

func (q QuestionPostgreSQL) applyFilters(query *gorm.DB, filters repositories.QuestionFilters) *gorm.DB {
	if filters.Subject != nil {
		query = query.Where("subject = ?", *filters.Subject)
	}
	if filters.Week != nil {
		query = query.Where("week = ?", *filters.Week)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
