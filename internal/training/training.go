// Package training computes summary statistics for a single workout session
// from raw sensor readings. Each workout kind carries its own distance,
// speed, and calorie formulas; all operations are pure and records are
// immutable after construction.
package training

import (
	"errors"
	"fmt"
	"math"
)

const (
	metersPerKm    = 1000
	minutesPerHour = 60

	// Meters covered by one sensor action.
	stepLength   = 0.65 // running and walking
	strokeLength = 1.38 // swimming

	runSpeedRate   = 18
	runSpeedOffset = 20

	walkWeightRate = 0.035
	walkHeightRate = 0.029

	swimSpeedOffset = 1.1
	swimWeightRate  = 2
)

// Training is a single workout session able to report its derived metrics.
// Duration is in hours, Distance in km, MeanSpeed in km/h.
type Training interface {
	Kind() string
	Duration() float64
	Distance() float64
	MeanSpeed() float64
	SpentCalories() (float64, error)
}

// ErrNotImplemented marks a workout kind without a calorie formula.
var ErrNotImplemented = errors.New("spent calories not implemented")

// NotImplementedError identifies the workout kind missing a calorie formula.
type NotImplementedError struct {
	Kind string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("spent calories not implemented for %s", e.Kind)
}

func (e *NotImplementedError) Unwrap() error { return ErrNotImplemented }

// Base is the record shared by every workout kind: it derives distance and
// mean speed from the raw readings but has no calorie formula of its own.
// Concrete kinds embed it and provide SpentCalories.
type Base struct {
	action   int     // steps or strokes counted by the sensor
	duration float64 // hours, must be nonzero
	weight   float64 // kilograms
}

// NewBase constructs the shared record from raw readings.
func NewBase(action int, duration, weight float64) Base {
	return Base{action: action, duration: duration, weight: weight}
}

func (b Base) Kind() string { return "Base" }

// Duration reports the session length in hours.
func (b Base) Duration() float64 { return b.duration }

// Distance reports the covered distance in km.
func (b Base) Distance() float64 {
	return float64(b.action) * stepLength / metersPerKm
}

// MeanSpeed reports the average speed over the full session in km/h.
func (b Base) MeanSpeed() float64 {
	return b.Distance() / b.duration
}

// SpentCalories on the bare record always fails: only concrete kinds know
// how to burn calories.
func (b Base) SpentCalories() (float64, error) {
	return 0, &NotImplementedError{Kind: b.Kind()}
}

// Running is a running session.
type Running struct {
	Base
}

// NewRunning constructs a running session.
func NewRunning(action int, duration, weight float64) Running {
	return Running{Base: NewBase(action, duration, weight)}
}

func (r Running) Kind() string { return "Running" }

// SpentCalories estimates the calorie burn for a run.
func (r Running) SpentCalories() (float64, error) {
	return (runSpeedRate*r.MeanSpeed() - runSpeedOffset) *
		r.weight / metersPerKm * r.duration * minutesPerHour, nil
}

// SportsWalking is a sports-walking session.
type SportsWalking struct {
	Base
	height float64 // centimeters, must be nonzero
}

// NewSportsWalking constructs a walking session.
func NewSportsWalking(action int, duration, weight, height float64) SportsWalking {
	return SportsWalking{Base: NewBase(action, duration, weight), height: height}
}

func (w SportsWalking) Kind() string { return "SportsWalking" }

// Height reports the walker's height in centimeters.
func (w SportsWalking) Height() float64 { return w.height }

// SpentCalories estimates the calorie burn for a walk. The squared-speed
// over height quotient is truncated toward negative infinity before scaling.
func (w SportsWalking) SpentCalories() (float64, error) {
	speed := w.MeanSpeed()
	return (walkWeightRate*w.weight +
		math.Floor(speed*speed/w.height)*walkHeightRate*w.weight) *
		w.duration * minutesPerHour, nil
}

// Swimming is a swimming session. Distance comes from stroke count, while
// mean speed comes from pool geometry and ignores stroke distance entirely.
type Swimming struct {
	Base
	lengthPool float64 // meters
	countPool  int     // completed pool lengths
}

// NewSwimming constructs a swimming session.
func NewSwimming(action int, duration, weight, lengthPool float64, countPool int) Swimming {
	return Swimming{
		Base:       NewBase(action, duration, weight),
		lengthPool: lengthPool,
		countPool:  countPool,
	}
}

func (s Swimming) Kind() string { return "Swimming" }

// Distance reports the covered distance in km based on stroke count.
func (s Swimming) Distance() float64 {
	return float64(s.action) * strokeLength / metersPerKm
}

// MeanSpeed reports the average speed in km/h derived from pool geometry.
func (s Swimming) MeanSpeed() float64 {
	return s.lengthPool * float64(s.countPool) / metersPerKm / s.duration
}

// SpentCalories estimates the calorie burn for a swim.
func (s Swimming) SpentCalories() (float64, error) {
	return (s.MeanSpeed() + swimSpeedOffset) * swimWeightRate * s.weight, nil
}
