// Command simulator imitates a batch of sensor packages and prints the
// formatted summary for each workout, one line per package, in input order.
package main

import (
	"fmt"
	"log"

	"github.com/sonikk666/fitness-tracker-module/internal/training"
)

type sensorPackage struct {
	code string
	data []float64
}

func main() {
	packages := []sensorPackage{
		{"SWM", []float64{720, 1, 80, 25, 40}},
		{"RUN", []float64{15000, 1, 75}},
		{"WLK", []float64{9000, 1, 75, 180}},
	}

	// One malformed package aborts the whole batch.
	for _, p := range packages {
		session, err := training.ReadPackage(p.code, p.data)
		if err != nil {
			log.Fatalf("failed to read sensor package: %v", err)
		}

		report, err := training.BuildReport(session)
		if err != nil {
			log.Fatalf("failed to build report: %v", err)
		}

		fmt.Println(report.Message())
	}
}
