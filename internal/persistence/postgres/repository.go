// Package postgres provides pgx-backed persistence for workout sessions.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sonikk666/fitness-tracker-module/internal/domain"
	"github.com/sonikk666/fitness-tracker-module/internal/observability"
)

const sessionColumns = `session_id, tenant_id, user_id, workout_code, kind, readings,
        duration_hours, distance_km, mean_speed_kmh, calories, message, source, created_at`

// Repository provides Postgres-backed persistence for workout sessions.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByIdempotency checks if a session already exists for the supplied idempotency key.
func (r *Repository) FindByIdempotency(ctx context.Context, tenantID, userID, idempotencyKey string) (*domain.SessionAggregate, error) {
	if idempotencyKey == "" {
		return nil, nil
	}

	const query = `SELECT ` + sessionColumns + `
        FROM workout_sessions WHERE tenant_id=$1 AND user_id=$2 AND idempotency_key=$3`

	row := r.pool.QueryRow(ctx, query, tenantID, userID, idempotencyKey)
	agg, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return agg, nil
}

// Create persists the computed session.
func (r *Repository) Create(ctx context.Context, aggregate domain.SessionAggregate, idempotencyKey string) error {
	const stmt = `INSERT INTO workout_sessions
        (session_id, tenant_id, user_id, workout_code, kind, readings,
         duration_hours, distance_km, mean_speed_kmh, calories, message, source,
         idempotency_key, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`

	_, err := r.pool.Exec(ctx, stmt,
		aggregate.ID,
		aggregate.TenantID,
		aggregate.UserID,
		aggregate.WorkoutCode,
		aggregate.Kind,
		aggregate.Readings,
		aggregate.DurationHours,
		aggregate.DistanceKm,
		aggregate.MeanSpeedKmh,
		aggregate.Calories,
		aggregate.Message,
		aggregate.Source,
		nullIfEmpty(idempotencyKey),
		aggregate.CreatedAt,
	)
	if err != nil {
		return err
	}

	observability.RecordSessionPersisted(aggregate.Kind, aggregate.CreatedAt)
	return nil
}

// Get retrieves a session by ID.
func (r *Repository) Get(ctx context.Context, tenantID, sessionID string) (*domain.SessionAggregate, error) {
	const query = `SELECT ` + sessionColumns + `
        FROM workout_sessions WHERE tenant_id=$1 AND session_id=$2`

	row := r.pool.QueryRow(ctx, query, tenantID, sessionID)
	agg, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return agg, nil
}

// ListByUser returns sessions for a user ordered by time, newest first.
func (r *Repository) ListByUser(ctx context.Context, tenantID, userID string, cursor *domain.Cursor, limit int) ([]domain.SessionAggregate, *domain.Cursor, error) {
	args := []interface{}{tenantID, userID, limit}
	query := `SELECT ` + sessionColumns + `
        FROM workout_sessions WHERE tenant_id=$1 AND user_id=$2`

	if cursor != nil {
		query += ` AND (created_at, session_id) < ($4, $5)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}

	query += ` ORDER BY created_at DESC, session_id DESC LIMIT $3`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	results := make([]domain.SessionAggregate, 0, limit)
	for rows.Next() {
		agg, err := scanSession(rows)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, *agg)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var nextCursor *domain.Cursor
	if len(results) == limit {
		last := results[len(results)-1]
		nextCursor = &domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	return results, nextCursor, nil
}

// SummaryByUser aggregates stats over the user's sessions inside the window.
// A non-positive window means all time.
func (r *Repository) SummaryByUser(ctx context.Context, tenantID, userID string, window time.Duration) (domain.SessionSummary, error) {
	var cutoff interface{}
	if window > 0 {
		cutoff = time.Now().UTC().Add(-window)
	}

	const totalsQuery = `SELECT COUNT(*),
            COALESCE(SUM(distance_km), 0),
            COALESCE(SUM(calories), 0),
            COALESCE(AVG(mean_speed_kmh), 0),
            MAX(created_at)
        FROM workout_sessions
        WHERE tenant_id=$1 AND user_id=$2 AND ($3::timestamptz IS NULL OR created_at >= $3)`

	summary := domain.SessionSummary{PerKind: make(map[string]int)}
	var lastAt *time.Time
	row := r.pool.QueryRow(ctx, totalsQuery, tenantID, userID, cutoff)
	if err := row.Scan(&summary.Total, &summary.TotalDistanceKm, &summary.TotalCalories, &summary.AverageSpeedKmh, &lastAt); err != nil {
		return domain.SessionSummary{}, err
	}
	summary.LastSessionAt = lastAt

	const perKindQuery = `SELECT kind, COUNT(*)
        FROM workout_sessions
        WHERE tenant_id=$1 AND user_id=$2 AND ($3::timestamptz IS NULL OR created_at >= $3)
        GROUP BY kind`

	rows, err := r.pool.Query(ctx, perKindQuery, tenantID, userID, cutoff)
	if err != nil {
		return domain.SessionSummary{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return domain.SessionSummary{}, err
		}
		summary.PerKind[kind] = count
	}
	if err := rows.Err(); err != nil {
		return domain.SessionSummary{}, err
	}

	return summary, nil
}

func scanSession(row pgx.Row) (*domain.SessionAggregate, error) {
	var agg domain.SessionAggregate
	if err := row.Scan(
		&agg.ID,
		&agg.TenantID,
		&agg.UserID,
		&agg.WorkoutCode,
		&agg.Kind,
		&agg.Readings,
		&agg.DurationHours,
		&agg.DistanceKm,
		&agg.MeanSpeedKmh,
		&agg.Calories,
		&agg.Message,
		&agg.Source,
		&agg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &agg, nil
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
