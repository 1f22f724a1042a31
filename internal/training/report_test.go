package training

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildReportSnapshotsMetrics(t *testing.T) {
	session, err := ReadPackage("RUN", []float64{15000, 1, 75})
	require.NoError(t, err)

	report, err := BuildReport(session)
	require.NoError(t, err)

	require.Equal(t, "Running", report.Kind)
	require.Equal(t, 1.0, report.Duration)
	require.Equal(t, 9.75, report.Distance)
	require.Equal(t, 9.75, report.Speed)
	require.InDelta(t, 699.75, report.Calories, 1e-9)
}

func TestBuildReportPropagatesCalorieError(t *testing.T) {
	_, err := BuildReport(NewBase(1000, 1, 70))
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestReportMessageTemplate(t *testing.T) {
	report := Report{
		Kind:     "Running",
		Duration: 1,
		Distance: 9.75,
		Speed:    9.75,
		Calories: 699.75,
	}

	require.Equal(t,
		"Workout type: Running; "+
			"Duration: 1.000 h; "+
			"Distance: 9.750 km; "+
			"Avg speed: 9.750 km/h; "+
			"Calories burned: 699.750.",
		report.Message())
}

func TestReportMessageEndsWithCalories(t *testing.T) {
	session, err := ReadPackage("RUN", []float64{15000, 1, 75})
	require.NoError(t, err)

	report, err := BuildReport(session)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(report.Message(), "Calories burned: 699.750."))
}

func TestReportMessageAlwaysThreeDecimals(t *testing.T) {
	pattern := regexp.MustCompile(
		`^Workout type: [A-Za-z]+; ` +
			`Duration: \d+\.\d{3} h; ` +
			`Distance: \d+\.\d{3} km; ` +
			`Avg speed: \d+\.\d{3} km/h; ` +
			`Calories burned: \d+\.\d{3}\.$`)

	packages := []struct {
		code string
		data []float64
	}{
		{"SWM", []float64{720, 1, 80, 25, 40}},
		{"RUN", []float64{15000, 1, 75}},
		{"WLK", []float64{9000, 1, 75, 180}},
		{"RUN", []float64{5000, 0.25, 90}},
		{"SWM", []float64{100000, 12, 150, 50, 1000}},
	}

	for _, p := range packages {
		session, err := ReadPackage(p.code, p.data)
		require.NoError(t, err)

		report, err := BuildReport(session)
		require.NoError(t, err)
		require.Regexp(t, pattern, report.Message())
	}
}
