// Command calibrate searches for gengrid noise thresholds that hit a
// target fluid coverage fraction, using gonum's CMA-ES optimizer.
// Adapted from the teacher's cmd/optimize, which searched ecosystem
// config parameters against a survival-time fitness function; here the
// fitness is distance from a target field composition instead.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/optimize"

	"fluidsim/field"
)

func main() {
	rows := flag.Int("rows", 36, "Interior + border row count")
	cols := flag.Int("cols", 84, "Interior + border column count")
	seed := flag.Int64("seed", 1337, "Noise seed")
	scale := flag.Float64("scale", 0.08, "Noise sampling frequency")
	octaves := flag.Int("octaves", 4, "FBM octave count")
	targetFraction := flag.Float64("target", 0.35, "Target fraction of open cells that are fluid")
	maxEvals := flag.Int("max-evals", 60, "Maximum optimizer evaluations")
	logPath := flag.String("log", "", "CSV evaluation log path (empty = no log)")
	flag.Parse()

	if *rows < 3 || *cols < 3 {
		log.Fatalf("calibrate: rows and cols must be at least 3")
	}
	if *targetFraction < 0 || *targetFraction > 1 {
		log.Fatalf("calibrate: -target must be in [0, 1]")
	}

	var logWriter *csv.Writer
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("calibrate: creating log file: %v", err)
		}
		defer f.Close()
		logWriter = csv.NewWriter(f)
		defer logWriter.Flush()
		logWriter.Write([]string{"eval", "obstacle_threshold", "fluid_threshold", "fraction", "error"})
	}

	evalCount := 0
	// x[0] = obstacle threshold, x[1] = fluid threshold, both in [0, 1]
	// with obstacle > fluid enforced by clamping before use.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			obstacle, fluidT := clampThresholds(x[0], x[1])
			g := field.GenerateNoiseGrid(*rows, *cols, field.NoiseParams{
				Seed:              *seed,
				Scale:             *scale,
				Octaves:           *octaves,
				ObstacleThreshold: obstacle,
				FluidThreshold:    fluidT,
			})
			fraction := field.FluidFraction(g)
			errVal := fraction - *targetFraction
			cost := errVal * errVal

			evalCount++
			if logWriter != nil {
				logWriter.Write([]string{
					fmt.Sprint(evalCount),
					fmt.Sprintf("%.4f", obstacle),
					fmt.Sprintf("%.4f", fluidT),
					fmt.Sprintf("%.4f", fraction),
					fmt.Sprintf("%.4f", errVal),
				})
				logWriter.Flush()
			}
			return cost
		},
	}

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: 0.2, Population: 8}

	result, err := optimize.Minimize(problem, []float64{0.62, 0.45}, settings, method)
	if err != nil {
		log.Printf("calibrate: optimization ended: %v", err)
	}
	if result == nil {
		log.Fatalf("calibrate: optimizer returned no result")
	}

	obstacle, fluidT := clampThresholds(result.X[0], result.X[1])
	fmt.Printf("best obstacle-threshold=%.4f fluid-threshold=%.4f after %d evaluations\n", obstacle, fluidT, evalCount)
}

// clampThresholds keeps both thresholds in [0, 1] and preserves
// obstacle >= fluid so the caller's '#'/'.'/'  ' ordering holds.
func clampThresholds(obstacle, fluidT float64) (float64, float64) {
	obstacle = clamp01(obstacle)
	fluidT = clamp01(fluidT)
	if fluidT > obstacle {
		fluidT = obstacle
	}
	return obstacle, fluidT
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
