package events

import (
	"context"
	"testing"
	"time"

	"github.com/studylegend/mastery-service/internal/utils"
)

func TestNewPracticeRecordedEvent(t *testing.T) {
	practiced := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	event := NewPracticeRecordedEvent(PracticeRecordedEvent{
		QuestionID:   42,
		Subject:      "Mathematics",
		Week:         3,
		Score:        4,
		AttemptCount: 2,
		OwnerEmail:   "student@example.com",
		PracticedAt:  practiced,
	})

	if event.ID == "" {
		t.Error("Event ID should not be empty")
	}
	if event.Type != EventPracticeRecorded {
		t.Errorf("Expected event type %s, got %s", EventPracticeRecorded, event.Type)
	}
	if event.Source != "mastery-service" {
		t.Errorf("Expected source 'mastery-service', got '%s'", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("Expected version '1.0', got '%s'", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("Event timestamp should not be zero")
	}

	data, ok := event.Data.(PracticeRecordedEvent)
	if !ok {
		t.Fatal("Event data is not PracticeRecordedEvent type")
	}
	if data.QuestionID != 42 {
		t.Errorf("Expected question ID 42, got %d", data.QuestionID)
	}
	if !data.PracticedAt.Equal(practiced) {
		t.Errorf("Expected practiced at %v, got %v", practiced, data.PracticedAt)
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := utils.NewTestLogger()
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	event := NewPracticeRecordedEvent(PracticeRecordedEvent{QuestionID: 1, Subject: "History", Week: 1, Score: 3})
	if err := publisher.PublishPracticeEvent(ctx, event); err != nil {
		t.Fatalf("Failed to publish event: %v", err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(published))
	}
	if published[0].ID != event.ID {
		t.Errorf("Expected event ID %s, got %s", event.ID, published[0].ID)
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("Expected no events after clearing")
	}

	if err := publisher.Close(); err != nil {
		t.Errorf("Close should not fail: %v", err)
	}

	// GenerateEventID must produce distinct identifiers.
	if GenerateEventID() == GenerateEventID() {
		t.Error("Expected unique event IDs")
	}
}
