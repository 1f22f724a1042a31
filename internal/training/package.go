package training

import (
	"errors"
	"fmt"
)

// ErrInvalidPackage marks a sensor package that cannot be decoded into a
// workout session.
var ErrInvalidPackage = errors.New("invalid workout package")

// InvalidPackageError carries the offending workout code and readings for
// diagnostics. Unknown codes and wrong arity collapse into this one kind.
type InvalidPackageError struct {
	Code string
	Data []float64
}

func (e *InvalidPackageError) Error() string {
	return fmt.Sprintf("invalid workout package <%s: %v>", e.Code, e.Data)
}

func (e *InvalidPackageError) Unwrap() error { return ErrInvalidPackage }

// constructors maps a sensor workout code to the arity of its reading list
// and a builder binding the readings positionally.
var constructors = map[string]struct {
	arity int
	build func(data []float64) Training
}{
	"SWM": {5, func(d []float64) Training {
		return NewSwimming(int(d[0]), d[1], d[2], d[3], int(d[4]))
	}},
	"RUN": {3, func(d []float64) Training {
		return NewRunning(int(d[0]), d[1], d[2])
	}},
	"WLK": {4, func(d []float64) Training {
		return NewSportsWalking(int(d[0]), d[1], d[2], d[3])
	}},
}

// ReadPackage decodes one sensor package into a workout session. The code
// selects the workout kind and data is bound positionally to its readings.
func ReadPackage(code string, data []float64) (Training, error) {
	c, ok := constructors[code]
	if !ok || len(data) != c.arity {
		return nil, &InvalidPackageError{Code: code, Data: data}
	}
	return c.build(data), nil
}
