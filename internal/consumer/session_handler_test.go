package consumer

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sonikk666/fitness-tracker-module/internal/domain"
)

func TestSessionHandlerRecordsSession(t *testing.T) {
	repo := &recordingRepo{}
	handler := NewSessionHandler(domain.NewService(repo))

	err := handler.Handle(context.Background(), Message{
		Topic:     "workout_events",
		Partition: 2,
		Offset:    15,
		EventType: EventTypeWorkoutRecorded,
		TenantID:  "tenant-1",
		Payload:   json.RawMessage(`{"user_id":"user-1","workout_type":"SWM","readings":[720,1,80,25,40],"source":"watch"}`),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	require.Equal(t, "Swimming", repo.created.Kind)
	require.Equal(t, 1.0, repo.created.MeanSpeedKmh)
	require.InDelta(t, 336.0, repo.created.Calories, 1e-9)
	require.Equal(t, "workout_events:2:15", repo.idempotencyKey)
}

func TestSessionHandlerDropsInvalidPackages(t *testing.T) {
	repo := &recordingRepo{}
	handler := NewSessionHandler(domain.NewService(repo))

	err := handler.Handle(context.Background(), Message{
		Topic:     "workout_events",
		EventType: EventTypeWorkoutRecorded,
		TenantID:  "tenant-1",
		Payload:   json.RawMessage(`{"user_id":"user-1","workout_type":"XYZ","readings":[1,1,1]}`),
	})

	// Deterministic failure: dropped, not retried.
	require.NoError(t, err)
	require.Nil(t, repo.created)
}

func TestSessionHandlerIgnoresUnknownEventTypes(t *testing.T) {
	repo := &recordingRepo{}
	handler := NewSessionHandler(domain.NewService(repo))

	err := handler.Handle(context.Background(), Message{
		Topic:     "workout_events",
		EventType: "workout.deleted",
		Payload:   json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	require.Nil(t, repo.created)
}

func TestSessionHandlerRejectsMalformedPayload(t *testing.T) {
	repo := &recordingRepo{}
	handler := NewSessionHandler(domain.NewService(repo))

	err := handler.Handle(context.Background(), Message{
		Topic:     "workout_events",
		EventType: EventTypeWorkoutRecorded,
		Payload:   json.RawMessage(`{"readings":"not-a-list"}`),
	})
	require.Error(t, err)
	require.Nil(t, repo.created)
}

type recordingRepo struct {
	mu             sync.Mutex
	created        *domain.SessionAggregate
	idempotencyKey string
}

func (r *recordingRepo) lastCreated() *domain.SessionAggregate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

func (r *recordingRepo) FindByIdempotency(ctx context.Context, tenantID, userID, idempotencyKey string) (*domain.SessionAggregate, error) {
	return nil, nil
}

func (r *recordingRepo) Create(ctx context.Context, aggregate domain.SessionAggregate, idempotencyKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = &aggregate
	r.idempotencyKey = idempotencyKey
	return nil
}

func (r *recordingRepo) Get(ctx context.Context, tenantID, sessionID string) (*domain.SessionAggregate, error) {
	return nil, nil
}

func (r *recordingRepo) ListByUser(ctx context.Context, tenantID, userID string, cursor *domain.Cursor, limit int) ([]domain.SessionAggregate, *domain.Cursor, error) {
	return nil, nil, nil
}

func (r *recordingRepo) SummaryByUser(ctx context.Context, tenantID, userID string, window time.Duration) (domain.SessionSummary, error) {
	return domain.SessionSummary{}, nil
}
