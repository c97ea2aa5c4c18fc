package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// Score values recorded by learners are self-assessments on a 1-5 scale.
	ScoreValueMin = 1
	ScoreValueMax = 5

	WeekMin = 1
	WeekMax = 52
)

// ScoreEntry is one recorded practice attempt for a question. Entries are
// immutable once appended; the history is ordered oldest to newest.
type ScoreEntry struct {
	Value      float64   `json:"score" validate:"required,min=1,max=5"`
	Timestamp  time.Time `json:"timestamp"`
	AnswerText *string   `json:"user_answer,omitempty"`
}

// Question is one learning item with its full practice history. The history
// lives on the row as a JSONB array so an append never rewrites sibling
// items. LastPracticed mirrors the timestamp of the newest history entry and
// is nil while the history is empty.
type Question struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	Subject    string  `json:"subject" gorm:"not null;size:100;index:idx_questions_owner_subject" validate:"required,min=1,max=100"`
	Week       int     `json:"week" gorm:"not null;index" validate:"required,week_number"`
	Prompt     string  `json:"question" gorm:"type:text" validate:"max=1000"`
	Answer     string  `json:"answer" gorm:"type:text" validate:"max=2000"`
	OwnerEmail string  `json:"email" gorm:"not null;size:255;index:idx_questions_owner_subject" validate:"required,email"`
	Position   int     `json:"position" gorm:"not null;default:0"`

	Scores        datatypes.JSONSlice[ScoreEntry] `json:"scores" gorm:"type:jsonb"`
	LastPracticed *time.Time                      `json:"last_practiced"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// History returns the score entries as a plain slice, oldest first.
func (q *Question) History() []ScoreEntry {
	return []ScoreEntry(q.Scores)
}

// AttemptCount is the number of recorded practice attempts.
func (q *Question) AttemptCount() int {
	return len(q.Scores)
}
