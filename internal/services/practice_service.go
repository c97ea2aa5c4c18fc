package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studylegend/mastery-service/internal/cache"
	apperrors "github.com/studylegend/mastery-service/internal/errors"
	"github.com/studylegend/mastery-service/internal/events"
	"github.com/studylegend/mastery-service/internal/models"
	"github.com/studylegend/mastery-service/internal/repositories"
	"github.com/studylegend/mastery-service/internal/validator"
)

// RecordAttemptRequest carries everything needed to record one practice
// attempt against the item at (subject, week, item_index) for a user.
type RecordAttemptRequest struct {
	Subject    string  `json:"subject" validate:"required,max=100,subject_name"`
	Week       int     `json:"week" validate:"required,week_number"`
	ItemIndex  int     `json:"item_index" validate:"gte=0"`
	Value      float64 `json:"score" validate:"required,score_value"`
	AnswerText *string `json:"user_answer,omitempty" validate:"omitempty,max=2000"`
	OwnerEmail string  `json:"email" validate:"required,email"`
}

// PracticeFields implements validator.PracticeInput.
func (r *RecordAttemptRequest) PracticeFields() (string, int, int, float64) {
	return r.Subject, r.Week, r.ItemIndex, r.Value
}

// PracticeService is the only mutating operation in the engine: it validates
// and appends a new score entry to an item's history through the question
// store.
type PracticeService interface {
	RecordAttempt(ctx context.Context, req *RecordAttemptRequest, now time.Time) ([]models.ScoreEntry, error)
}

type practiceService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator
}

// NewPracticeService creates the score-update workflow. publisher and
// statsCache may be nil; both are best-effort side channels.
func NewPracticeService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	statsCache cache.CacheService,
	logger *slog.Logger,
	v *validator.Validator,
) PracticeService {
	return &practiceService{
		repo:      repo,
		publisher: publisher,
		cache:     statsCache,
		logger:    logger,
		validator: v,
	}
}

func (s *practiceService) RecordAttempt(ctx context.Context, req *RecordAttemptRequest, now time.Time) ([]models.ScoreEntry, error) {
	s.logger.Info("Recording practice attempt",
		"subject", req.Subject,
		"week", req.Week,
		"item_index", req.ItemIndex,
		"email", req.OwnerEmail)

	// All constraints are checked before any write; a violation means no
	// partial state anywhere.
	if err := s.validator.ValidateStruct(req); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return nil, ve
		}
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if errs := s.validator.Practice().Validate(req); len(errs) > 0 {
		return nil, errs
	}

	entry := models.ScoreEntry{
		Value:      req.Value,
		Timestamp:  now.UTC(),
		AnswerText: req.AnswerText,
	}

	question, err := s.repo.Question().AppendScoreEntry(
		ctx, req.Subject, req.Week, req.ItemIndex, entry, req.OwnerEmail)
	if err != nil {
		return nil, NewStoreError("append score entry", err)
	}

	s.publishRecorded(ctx, question, req, entry.Timestamp)
	s.invalidateStatistics(ctx, req.OwnerEmail)

	s.logger.Info("Practice attempt recorded",
		"question_id", question.ID,
		"attempt_count", question.AttemptCount())

	return question.History(), nil
}

// publishRecorded emits the practice.recorded event. Publishing is
// best-effort: a broker failure is logged and never fails the write.
func (s *practiceService) publishRecorded(ctx context.Context, question *models.Question, req *RecordAttemptRequest, recordedAt time.Time) {
	if s.publisher == nil {
		return
	}

	// The store is expected to set LastPracticed on append, but a broken
	// implementation must not panic the workflow.
	practicedAt := recordedAt
	if question.LastPracticed != nil {
		practicedAt = *question.LastPracticed
	}

	event := events.NewPracticeRecordedEvent(events.PracticeRecordedEvent{
		QuestionID:   question.ID,
		Subject:      question.Subject,
		Week:         question.Week,
		ItemIndex:    question.Position,
		Score:        req.Value,
		AttemptCount: question.AttemptCount(),
		OwnerEmail:   question.OwnerEmail,
		PracticedAt:  practicedAt,
	})

	if err := s.publisher.PublishPracticeEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish practice event",
			"question_id", question.ID, "error", err)
	}
}

func (s *practiceService) invalidateStatistics(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, StatisticsCacheKeyPattern(email)); err != nil {
		s.logger.Warn("Failed to invalidate cached statistics",
			"email", email, "error", err)
	}
}
