package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestNewEventEnvelope(t *testing.T) {
	event := NewEvent(TypeAttendanceSaved, AttendanceSavedEvent{
		Department:   "BCA",
		Date:         "2024-01-10",
		PresentCount: 1,
	})

	if event.ID == "" {
		t.Error("event ID should not be empty")
	}
	if event.Source != EventSource {
		t.Errorf("Source = %q, want %q", event.Source, EventSource)
	}
	if event.Version != EventVersion {
		t.Errorf("Version = %q, want %q", event.Version, EventVersion)
	}
	if event.Timestamp.IsZero() {
		t.Error("event timestamp should not be zero")
	}
}

func TestMockPublisherRecordsEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	err := publisher.Publish(ctx, TopicAttendance, NewEvent(TypeAttendanceSaved, AttendanceSavedEvent{
		Department:   "BCA",
		Date:         "2024-01-10",
		PresentCount: 2,
		AbsentCount:  1,
	}))
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	recorded := publisher.GetPublishedEvents()
	if len(recorded) != 1 {
		t.Fatalf("expected 1 event, got %d", len(recorded))
	}
	if recorded[0].Type != TypeAttendanceSaved {
		t.Errorf("Type = %q, want %q", recorded[0].Type, TypeAttendanceSaved)
	}

	data, ok := recorded[0].Data.(AttendanceSavedEvent)
	if !ok {
		t.Fatalf("Data is %T, want AttendanceSavedEvent", recorded[0].Data)
	}
	if data.PresentCount != 2 || data.AbsentCount != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", data.PresentCount, data.AbsentCount)
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("ClearEvents() should drop recorded events")
	}
}
