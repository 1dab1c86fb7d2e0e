package field

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseParams controls procedural grid carving from 2-D OpenSimplex
// FBM noise, in the spirit of the teacher's ResourceField noise-driven
// terrain population.
type NoiseParams struct {
	Seed              int64
	Scale             float64
	Octaves           int
	ObstacleThreshold float64 // noise above this becomes '#'
	FluidThreshold    float64 // noise above this (and below ObstacleThreshold) becomes '.'
}

// GenerateNoiseGrid carves a Rows x Cols grid's interior from thresholded
// FBM noise, leaving the border intact from NewGrid. Rows and Cols must
// each be at least 3 to leave an open interior.
func GenerateNoiseGrid(rows, cols int, p NoiseParams) *Grid {
	g := NewGrid(rows, cols)
	noise := opensimplex.New(p.Seed)

	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			n := fbm(noise, float64(c)*p.Scale, float64(r)*p.Scale, p.Octaves)
			switch {
			case n > p.ObstacleThreshold:
				g.Field[r][c] = '#'
			case n > p.FluidThreshold:
				g.Field[r][c] = '.'
			default:
				g.Field[r][c] = ' '
			}
		}
	}
	return g
}

// fbm sums progressively higher-frequency, lower-amplitude octaves of
// 2-D OpenSimplex noise, remapped from [-1, 1] to [0, 1].
func fbm(noise opensimplex.Noise, x, y float64, octaves int) float64 {
	sum := 0.0
	amp := 0.5
	freq := 1.0
	for o := 0; o < octaves; o++ {
		n := (noise.Eval2(x*freq, y*freq) + 1) * 0.5
		sum += amp * n
		freq *= 2
		amp *= 0.5
	}
	return math.Min(sum, 1)
}

// FluidFraction returns the proportion of interior (non-border) cells
// that are '.'; used by cmd/calibrate to score a threshold choice
// against a target fluid coverage.
func FluidFraction(g *Grid) float64 {
	open := 0
	fluid := 0
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			if g.Field[r][c] == '#' {
				continue
			}
			open++
			if g.Field[r][c] == '.' {
				fluid++
			}
		}
	}
	if open == 0 {
		return 0
	}
	return float64(fluid) / float64(open)
}
