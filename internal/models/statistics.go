package models

import "time"

// Derived statistics structures. These are recomputed on demand from the
// question store and never persisted; AverageMastery is nil (not zero) when
// no item has a defined mastery score.

type UserStatistics struct {
	TotalItems       int                           `json:"total_items"`
	TotalAttempts    int                           `json:"total_attempts"`
	AverageMastery   *float64                      `json:"average_mastery"`
	SubjectBreakdown map[string]*SubjectStatistics `json:"subject_breakdown"`
	StreakDays       int                           `json:"streak_days"`
	LastActive       *time.Time                    `json:"last_active"`
	ExcludedItems    int                           `json:"excluded_items"`
	GeneratedAt      time.Time                     `json:"generated_at"`
}

type SubjectStatistics struct {
	Subject        string          `json:"subject"`
	TotalItems     int             `json:"total_items"`
	TotalAttempts  int             `json:"total_attempts"`
	AverageMastery *float64        `json:"average_mastery"`
	WeeklyScores   map[int]float64 `json:"weekly_scores"`
	WeakWeeks      []int           `json:"weak_weeks"`
	ExcludedItems  int             `json:"excluded_items"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// ActivityItem is one entry in a user's recent practice feed.
type ActivityItem struct {
	Type        string    `json:"type"`
	Subject     string    `json:"subject"`
	Week        int       `json:"week"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
