package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/studylegend/mastery-service/internal/models"
	"github.com/studylegend/mastery-service/internal/repositories"
)

// weakWeekThreshold marks a week as weak when its average falls below this
// fraction of the subject average.
const weakWeekThreshold = 0.8

// defaultActivityLimit bounds the recent-activity feed.
const defaultActivityLimit = 10

// AnalyticsService aggregates per-item mastery scores into user- and
// subject-level statistics. All results are recomputed on demand; identical
// item histories and an identical reference time always produce identical
// statistics.
type AnalyticsService interface {
	GetUserStatistics(ctx context.Context, email string, now time.Time) (*models.UserStatistics, error)
	GetSubjectStatistics(ctx context.Context, subject, email string, now time.Time) (*models.SubjectStatistics, error)
	GetRecentActivity(ctx context.Context, email string, limit int) ([]models.ActivityItem, error)
}

type analyticsService struct {
	repo    repositories.Repository
	scorer  *ScoreCalculator
	streaks *StreakCalculator
	logger  *slog.Logger
}

func NewAnalyticsService(repo repositories.Repository, scorer *ScoreCalculator, logger *slog.Logger) AnalyticsService {
	return &analyticsService{
		repo:    repo,
		scorer:  scorer,
		streaks: NewStreakCalculator(),
		logger:  logger,
	}
}

// ===== USER STATISTICS =====

func (s *analyticsService) GetUserStatistics(ctx context.Context, email string, now time.Time) (*models.UserStatistics, error) {
	s.logger.Info("Generating user statistics", "email", email)

	if err := s.confirmUserExists(ctx, email); err != nil {
		return nil, err
	}

	questions, err := s.repo.Question().GetByOwner(ctx, email, repositories.QuestionFilters{})
	if err != nil {
		return nil, NewStoreError("load questions by owner", err)
	}

	stats := &models.UserStatistics{
		SubjectBreakdown: make(map[string]*models.SubjectStatistics),
		GeneratedAt:      now,
	}

	var (
		masteries     []float64
		practiceDates []time.Time
		bySubject     = make(map[string][]*models.Question)
	)

	for _, q := range questions {
		stats.TotalItems++
		stats.TotalAttempts += q.AttemptCount()
		bySubject[q.Subject] = append(bySubject[q.Subject], q)

		if q.LastPracticed != nil {
			if stats.LastActive == nil || q.LastPracticed.After(*stats.LastActive) {
				stats.LastActive = q.LastPracticed
			}
		}

		// Every attempt day feeds the streak. Re-practicing an item moves
		// its LastPracticed forward, so only the full history preserves the
		// earlier days.
		for _, entry := range q.History() {
			practiceDates = append(practiceDates, entry.Timestamp)
		}

		mastery, err := s.scorer.ComputeMastery(q.History(), q.LastPracticed, now)
		if err != nil {
			// One bad item never aborts the aggregate; it is excluded and
			// counted so the caller can surface the gap.
			stats.ExcludedItems++
			s.logger.Warn("Excluding item from statistics",
				"question_id", q.ID, "subject", q.Subject, "error", err)
			continue
		}
		if mastery != nil {
			masteries = append(masteries, *mastery)
		}
	}

	stats.AverageMastery = meanOf(masteries)
	stats.StreakDays = s.streaks.ComputeStreak(practiceDates, now)

	for subject, items := range bySubject {
		stats.SubjectBreakdown[subject] = s.buildSubjectStatistics(subject, items, now)
	}

	return stats, nil
}

// ===== SUBJECT STATISTICS =====

func (s *analyticsService) GetSubjectStatistics(ctx context.Context, subject, email string, now time.Time) (*models.SubjectStatistics, error) {
	s.logger.Info("Generating subject statistics", "subject", subject, "email", email)

	if err := s.confirmUserExists(ctx, email); err != nil {
		return nil, err
	}

	questions, err := s.repo.Question().GetBySubject(ctx, subject, email)
	if err != nil {
		return nil, NewStoreError("load questions by subject", err)
	}

	return s.buildSubjectStatistics(subject, questions, now), nil
}

func (s *analyticsService) buildSubjectStatistics(subject string, items []*models.Question, now time.Time) *models.SubjectStatistics {
	stats := &models.SubjectStatistics{
		Subject:      subject,
		WeeklyScores: make(map[int]float64),
		WeakWeeks:    []int{},
		GeneratedAt:  now,
	}

	var masteries []float64
	weekly := make(map[int][]float64)

	for _, q := range items {
		stats.TotalItems++
		stats.TotalAttempts += q.AttemptCount()

		mastery, err := s.scorer.ComputeMastery(q.History(), q.LastPracticed, now)
		if err != nil {
			stats.ExcludedItems++
			s.logger.Warn("Excluding item from subject statistics",
				"question_id", q.ID, "subject", subject, "error", err)
			continue
		}
		if mastery != nil {
			masteries = append(masteries, *mastery)
			weekly[q.Week] = append(weekly[q.Week], *mastery)
		}
	}

	stats.AverageMastery = meanOf(masteries)

	for week, scores := range weekly {
		if avg := meanOf(scores); avg != nil {
			stats.WeeklyScores[week] = *avg
		}
	}

	// A weak week is relative to the subject average; with no defined
	// average the notion is meaningless and the weak set stays empty.
	if stats.AverageMastery != nil {
		for week, score := range stats.WeeklyScores {
			if score < weakWeekThreshold*(*stats.AverageMastery) {
				stats.WeakWeeks = append(stats.WeakWeeks, week)
			}
		}
		sort.Ints(stats.WeakWeeks)
	}

	return stats
}

// ===== RECENT ACTIVITY =====

func (s *analyticsService) GetRecentActivity(ctx context.Context, email string, limit int) ([]models.ActivityItem, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	questions, err := s.repo.Question().GetByOwner(ctx, email, repositories.QuestionFilters{})
	if err != nil {
		return nil, NewStoreError("load questions by owner", err)
	}

	practiced := make([]*models.Question, 0, len(questions))
	for _, q := range questions {
		if q.LastPracticed != nil {
			practiced = append(practiced, q)
		}
	}

	sort.Slice(practiced, func(i, j int) bool {
		return practiced[i].LastPracticed.After(*practiced[j].LastPracticed)
	})
	if len(practiced) > limit {
		practiced = practiced[:limit]
	}

	activity := make([]models.ActivityItem, 0, len(practiced))
	for _, q := range practiced {
		activity = append(activity, models.ActivityItem{
			Type:        "practice",
			Subject:     q.Subject,
			Week:        q.Week,
			Description: describePractice(q.Subject, q.Week),
			Timestamp:   *q.LastPracticed,
		})
	}

	return activity, nil
}

// ===== HELPERS =====

func (s *analyticsService) confirmUserExists(ctx context.Context, email string) error {
	if _, err := s.repo.User().GetByEmail(ctx, email); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return NewStoreError("find user", err)
	}
	return nil
}

func describePractice(subject string, week int) string {
	return fmt.Sprintf("Practiced %s Week %d", subject, week)
}

// meanOf returns nil for an empty slice so undefined averages stay distinct
// from a true zero.
func meanOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	return &mean
}
