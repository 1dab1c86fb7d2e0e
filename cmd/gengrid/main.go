// Command gengrid procedurally carves an input grid file (spec §6
// format) from 2-D OpenSimplex noise: thresholded into obstacle,
// fluid, and air cells, in the spirit of the teacher's ResourceField
// noise-driven terrain population.
package main

import (
	"flag"
	"fmt"
	"log"

	"fluidsim/field"
	"fluidsim/sim"
)

func main() {
	rows := flag.Int("rows", 36, "Interior + border row count")
	cols := flag.Int("cols", 84, "Interior + border column count")
	seed := flag.Int64("seed", 1337, "Noise seed")
	scale := flag.Float64("scale", 0.08, "Noise sampling frequency")
	octaves := flag.Int("octaves", 4, "FBM octave count")
	obstacleThreshold := flag.Float64("obstacle-threshold", 0.62, "Noise value above which a cell becomes '#'")
	fluidThreshold := flag.Float64("fluid-threshold", 0.45, "Noise value above which a non-obstacle cell becomes '.'")
	rhoAir := flag.Float64("rho-air", 0.01, "rho_air written to the trailer")
	rhoFluid := flag.Float64("rho-fluid", 1000, "rho_fluid written to the trailer")
	gravity := flag.Float64("g", 0.1, "g written to the trailer")
	output := flag.String("output", "", "Output grid file path (required)")
	flag.Parse()

	if *output == "" {
		log.Fatalf("gengrid: -output is required")
	}
	if *rows < 3 || *cols < 3 {
		log.Fatalf("gengrid: rows and cols must be at least 3 to leave an open interior")
	}

	g := field.GenerateNoiseGrid(*rows, *cols, field.NoiseParams{
		Seed:              *seed,
		Scale:             *scale,
		Octaves:           *octaves,
		ObstacleThreshold: *obstacleThreshold,
		FluidThreshold:    *fluidThreshold,
	})

	if err := writeGridFile(*output, g, *rhoAir, *rhoFluid, *gravity); err != nil {
		log.Fatalf("gengrid: %v", err)
	}
}

// writeGridFile emits the input-grid text format from spec §6,
// reusing sim.WriteCheckpoint's layout (header, field rows, trailer)
// since the two formats are identical but for the sentinel column,
// which the grid's own border already supplies.
func writeGridFile(path string, g *field.Grid, rhoAir, rhoFluid, gGrav float64) error {
	if err := sim.WriteCheckpoint(path, g, rhoAir, rhoFluid, gGrav); err != nil {
		return fmt.Errorf("writing grid file: %w", err)
	}
	return nil
}
