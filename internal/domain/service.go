// Package domain defines the business logic for the tracker service.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sonikk666/fitness-tracker-module/internal/training"
)

var (
	// ErrSessionNotFound is returned when a session cannot be located.
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository captures persistence operations.
type SessionRepository interface {
	FindByIdempotency(ctx context.Context, tenantID, userID, idempotencyKey string) (*SessionAggregate, error)
	Create(ctx context.Context, aggregate SessionAggregate, idempotencyKey string) error
	Get(ctx context.Context, tenantID, sessionID string) (*SessionAggregate, error)
	ListByUser(ctx context.Context, tenantID, userID string, cursor *Cursor, limit int) ([]SessionAggregate, *Cursor, error)
	SummaryByUser(ctx context.Context, tenantID, userID string, window time.Duration) (SessionSummary, error)
}

// Service orchestrates session workflows.
type Service struct {
	repo SessionRepository
}

// NewService constructs a Service.
func NewService(repo SessionRepository) *Service {
	return &Service{repo: repo}
}

// RecordSessionInput captures one sensor package from the API or consumer.
type RecordSessionInput struct {
	TenantID       string
	UserID         string
	WorkoutCode    string
	Readings       []float64
	Source         string
	IdempotencyKey string
}

// RecordSession decodes the sensor package, derives the summary metrics, and
// persists the session with idempotent create semantics. Malformed packages
// fail with training.ErrInvalidPackage before anything is written.
func (s *Service) RecordSession(ctx context.Context, input RecordSessionInput) (*SessionAggregate, bool, error) {
	if existing, err := s.repo.FindByIdempotency(ctx, input.TenantID, input.UserID, input.IdempotencyKey); err == nil && existing != nil {
		return existing, true, nil
	}

	session, err := training.ReadPackage(input.WorkoutCode, input.Readings)
	if err != nil {
		return nil, false, err
	}

	report, err := training.BuildReport(session)
	if err != nil {
		return nil, false, err
	}

	aggregate := SessionAggregate{
		ID:            uuid.NewString(),
		TenantID:      input.TenantID,
		UserID:        input.UserID,
		WorkoutCode:   input.WorkoutCode,
		Kind:          report.Kind,
		Readings:      input.Readings,
		DurationHours: report.Duration,
		DistanceKm:    report.Distance,
		MeanSpeedKmh:  report.Speed,
		Calories:      report.Calories,
		Message:       report.Message(),
		Source:        input.Source,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, aggregate, input.IdempotencyKey); err != nil {
		return nil, false, err
	}

	return &aggregate, false, nil
}

// GetSession fetches by ID.
func (s *Service) GetSession(ctx context.Context, tenantID, sessionID string) (*SessionAggregate, error) {
	agg, err := s.repo.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, ErrSessionNotFound
	}
	return agg, nil
}

// ListSessionsByUser fetches sessions with cursor pagination.
func (s *Service) ListSessionsByUser(ctx context.Context, tenantID, userID string, cursor *Cursor, limit int) ([]SessionAggregate, *Cursor, error) {
	return s.repo.ListByUser(ctx, tenantID, userID, cursor, limit)
}

// GetSessionSummary aggregates stats over the user's sessions inside the
// provided window. A zero window means all time.
func (s *Service) GetSessionSummary(ctx context.Context, tenantID, userID string, window time.Duration) (SessionSummary, error) {
	return s.repo.SummaryByUser(ctx, tenantID, userID, window)
}
