// Command fluidview is an interactive viewer for the fluid simulator:
// it textures the field (obstacle/fluid/air colors) and exposes
// playback controls via raygui: a speed slider plus pause/resume and
// single-step buttons.
// Purely visual — it drives the same Simulation the headless driver
// uses and never participates in simulation semantics.
//
// Grounded on the CPU-texture-plus-slider loop used elsewhere in this
// tree for parameter preview tools, rather than the shader-based
// renderer, since this viewer has no GPU shader asset to load.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"fluidsim/field"
	"fluidsim/scalar"
	"fluidsim/sim"
)

const (
	windowWidth  = 1100
	windowHeight = 760
	panelWidth   = 260
)

func main() {
	inputPath := flag.String("input", "", "Input grid file (empty = bundled demo grid)")
	seed := flag.Int64("seed", 1337, "Random seed")
	flag.Parse()

	path := *inputPath
	if path == "" {
		path = "testdata/demo.grid"
	}

	input, err := sim.ReadGridFile(path)
	if err != nil {
		log.Fatalf("fluidview: reading grid: %v", err)
	}
	input.Grid.ComputeDirs(0)

	density := field.NewDensityTable(input.RhoAir, input.RhoFluid)
	rng := rand.New(rand.NewSource(*seed))
	gravity := scalar.FixedTraits.FromFloat64(input.Gravity)
	s := sim.NewSimulation[scalar.Fixed, scalar.Fixed, scalar.Fixed](
		input.Grid, density,
		scalar.FixedTraits, scalar.FixedTraits, scalar.FixedTraits,
		gravity, rng,
	)

	rl.InitWindow(windowWidth, windowHeight, "fluidview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cellPx := previewCellSize(s.Grid.Rows, s.Grid.Cols)
	img := rl.GenImageColor(s.Grid.Cols, s.Grid.Rows, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	paused := false
	speed := float32(1)
	ticksAccum := float32(0)
	tickIndex := 0

	updateTexture(texture, s.Grid)

	for !rl.WindowShouldClose() {
		if !paused {
			ticksAccum += speed
		}
		for ticksAccum >= 1 {
			tickIndex++
			s.Tick()
			ticksAccum -= 1
		}
		updateTexture(texture, s.Grid)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(s.Grid.Cols), Height: float32(s.Grid.Rows)},
			rl.Rectangle{X: 10, Y: 10, Width: float32(s.Grid.Cols) * cellPx, Height: float32(s.Grid.Rows) * cellPx},
			rl.Vector2{X: 0, Y: 0}, 0, rl.White,
		)

		panelX := float32(s.Grid.Cols)*cellPx + 30
		panelY := float32(10)

		rl.DrawText("fluidview", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Speed (ticks/frame)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSpeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0", "10", speed, 0, 10,
		)
		if newSpeed != speed {
			speed = newSpeed
		}
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Step") {
			tickIndex++
			s.Tick()
			paused = true
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Tick: %d", tickIndex), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 20
		rl.DrawText(fmt.Sprintf("Total delta p: %.4f", s.TotalDeltaP.Float64()), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("Flow sweeps: %d", s.SweepsLastC), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("Migrated cells: %d", s.MigratedLast), int32(panelX), int32(panelY), 14, rl.Gray)

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// previewCellSize picks a per-cell pixel size so the rendered grid
// fits comfortably beside the control panel.
func previewCellSize(rows, cols int) float32 {
	maxW := float32(windowWidth-panelWidth-40) / float32(cols)
	maxH := float32(windowHeight-40) / float32(rows)
	size := maxW
	if maxH < size {
		size = maxH
	}
	if size < 2 {
		size = 2
	}
	if size > 24 {
		size = 24
	}
	return size
}

// updateTexture recolors the texture from the current field: obstacle
// cells dark gray, fluid cells blue, air cells near-white.
func updateTexture(texture rl.Texture2D, g *field.Grid) {
	pixels := make([]color.RGBA, g.Rows*g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			pixels[r*g.Cols+c] = colorFor(g.Field[r][c])
		}
	}
	rl.UpdateTexture(texture, pixels)
}

func colorFor(ch byte) color.RGBA {
	switch ch {
	case '#':
		return color.RGBA{R: 40, G: 40, B: 45, A: 255}
	case '.':
		return color.RGBA{R: 40, G: 110, B: 220, A: 255}
	case ' ':
		return color.RGBA{R: 235, G: 240, B: 245, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 80, A: 255}
	}
}
