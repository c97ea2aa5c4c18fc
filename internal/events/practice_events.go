package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of practice events
type EventType string

const (
	// Practice events
	EventPracticeRecorded EventType = "practice.recorded"
)

const eventSource = "mastery-service"
const eventVersion = "1.0"

// PracticeEvent is the envelope for all events published by this service
type PracticeEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// PracticeRecordedEvent is emitted after a score entry has been appended to
// an item's history.
type PracticeRecordedEvent struct {
	QuestionID   uint      `json:"question_id"`
	Subject      string    `json:"subject"`
	Week         int       `json:"week"`
	ItemIndex    int       `json:"item_index"`
	Score        float64   `json:"score"`
	AttemptCount int       `json:"attempt_count"`
	OwnerEmail   string    `json:"owner_email"`
	PracticedAt  time.Time `json:"practiced_at"`
}

// NewPracticeRecordedEvent wraps a recorded attempt in the event envelope.
func NewPracticeRecordedEvent(data PracticeRecordedEvent) *PracticeEvent {
	return &PracticeEvent{
		ID:        GenerateEventID(),
		Type:      EventPracticeRecorded,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a unique identifier for an event
func GenerateEventID() string {
	return watermill.NewUUID()
}
