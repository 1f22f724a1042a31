package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sonikk666/fitness-tracker-module/internal/domain"
	"github.com/sonikk666/fitness-tracker-module/internal/events"
	"github.com/sonikk666/fitness-tracker-module/internal/observability"
	"github.com/sonikk666/fitness-tracker-module/internal/training"
)

// EventTypeWorkoutRecorded is the event type carried by sensor uploads.
const EventTypeWorkoutRecorded = "workout.recorded"

// SessionHandler turns workout.recorded events into computed, persisted
// sessions via the domain service.
type SessionHandler struct {
	service *domain.Service
}

// NewSessionHandler constructs a handler backed by the domain service.
func NewSessionHandler(service *domain.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// Handle decodes the workout event and records the session. Invalid sensor
// packages are counted and dropped rather than returned: a malformed package
// is deterministic and would never succeed on redelivery.
func (h *SessionHandler) Handle(ctx context.Context, msg Message) error {
	if msg.EventType != EventTypeWorkoutRecorded {
		// Unknown event types are ignored so topics can evolve.
		return nil
	}

	var event events.WorkoutRecorded
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode workout.recorded payload: %w", err)
	}

	idempotencyKey := fmt.Sprintf("%s:%d:%d", msg.Topic, msg.Partition, msg.Offset)

	_, _, err := h.service.RecordSession(ctx, domain.RecordSessionInput{
		TenantID:       msg.TenantID,
		UserID:         event.UserID,
		WorkoutCode:    event.WorkoutType,
		Readings:       event.Readings,
		Source:         event.Source,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		if errors.Is(err, training.ErrInvalidPackage) {
			recordInvalidPackage(msg.Topic)
			observability.RecordInvalidPackage("consumer")
			return nil
		}
		return err
	}
	return nil
}
