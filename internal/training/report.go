package training

import "fmt"

// messageTemplate is the fixed human-readable summary layout. Field order
// and precision never change.
const messageTemplate = "Workout type: %s; " +
	"Duration: %.3f h; " +
	"Distance: %.3f km; " +
	"Avg speed: %.3f km/h; " +
	"Calories burned: %.3f."

// Report is an immutable snapshot of one session's derived summary values.
type Report struct {
	Kind     string
	Duration float64
	Distance float64
	Speed    float64
	Calories float64
}

// BuildReport captures the derived metrics of a session into a Report.
func BuildReport(t Training) (Report, error) {
	calories, err := t.SpentCalories()
	if err != nil {
		return Report{}, err
	}
	return Report{
		Kind:     t.Kind(),
		Duration: t.Duration(),
		Distance: t.Distance(),
		Speed:    t.MeanSpeed(),
		Calories: calories,
	}, nil
}

// Message renders the report into the fixed summary template, each numeric
// field formatted to three decimals.
func (r Report) Message() string {
	return fmt.Sprintf(messageTemplate, r.Kind, r.Duration, r.Distance, r.Speed, r.Calories)
}
