// Package events defines event payloads consumed from the sensor pipeline.
package events

import "time"

// WorkoutRecorded is the message emitted when a wearable uploads one
// finished workout as a (code, readings) sensor package.
type WorkoutRecorded struct {
	UserID      string    `json:"user_id"`
	WorkoutType string    `json:"workout_type"`
	Readings    []float64 `json:"readings"`
	Source      string    `json:"source"`
	RecordedAt  time.Time `json:"recorded_at"`
}
