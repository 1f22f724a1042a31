package domain

import "time"

// SessionAggregate is one computed workout session stored in Postgres.
// The derived metrics are computed once at record time and never mutated.
type SessionAggregate struct {
	ID            string
	TenantID      string
	UserID        string
	WorkoutCode   string // sensor package code (SWM, RUN, WLK)
	Kind          string // workout kind name (Swimming, Running, SportsWalking)
	Readings      []float64
	DurationHours float64
	DistanceKm    float64
	MeanSpeedKmh  float64
	Calories      float64
	Message       string
	Source        string
	CreatedAt     time.Time
}

// Cursor models the keyset pagination token for session listings.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// SessionSummary describes aggregate stats over a user's sessions.
type SessionSummary struct {
	Total           int
	PerKind         map[string]int
	TotalDistanceKm float64
	TotalCalories   float64
	AverageSpeedKmh float64
	LastSessionAt   *time.Time
}
