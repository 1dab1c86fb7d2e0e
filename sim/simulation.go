// Package sim implements the per-tick update pipeline: the five-phase
// driver and the recursive flow/move/stop propagators built around the
// last_use generation counter.
//
// Invariants (see field.Grid and field.Cells for the storage they
// apply to):
//  1. '#' cells carry no meaningful per-cell state beyond initialization.
//  2. velocity[r][c][d] and velocity[r+dr][c+dc][d'] are independent
//     storage; no symmetry is enforced between a direction and its
//     opposite at the neighboring cell.
//  3. velocity_flow[r][c][d] <= velocity[r][c][d] whenever the latter is
//     positive, enforced at the end of phase C.
//  4. last_use[r][c] is one of {0, UT-2, UT-1, UT} during any
//     propagation round; UT marks a cell closed for the round.
//  5. dirs[r][c] never changes after field.Grid.ComputeDirs.
package sim

import (
	"math/rand"

	"fluidsim/field"
	"fluidsim/logging"
	"fluidsim/scalar"
)

// Simulation is the tick driver for one fixed instantiation of the
// three scalar parameters: P (pressure), V (velocity), FV (flow).
type Simulation[P scalar.Value[P], V scalar.Value[V], FV scalar.Value[FV]] struct {
	Grid     *field.Grid
	Cells    *field.Cells[P]
	Velocity *field.VelocityField[V]
	Flow     *field.VelocityField[FV]
	Density  *field.DensityTable

	PTraits  scalar.Traits[P]
	VTraits  scalar.Traits[V]
	FVTraits scalar.Traits[FV]

	Gravity V
	Rng     *rand.Rand

	UT           int32
	TotalDeltaP  P
	TickCount    int
	SweepsLastC  int
	MigratedLast int
	swapCount    int
}

// NewSimulation builds a simulation over a grid already populated by a
// caller (typically sim/io.go's grid-file reader). The Rng must be
// seeded by the caller; spec requires seed 1337 for reproducible runs.
func NewSimulation[P scalar.Value[P], V scalar.Value[V], FV scalar.Value[FV]](
	g *field.Grid,
	density *field.DensityTable,
	pTraits scalar.Traits[P],
	vTraits scalar.Traits[V],
	fvTraits scalar.Traits[FV],
	gravity V,
	rng *rand.Rand,
) *Simulation[P, V, FV] {
	return &Simulation[P, V, FV]{
		Grid:        g,
		Cells:       field.NewCells[P](g.Rows, g.Cols),
		Velocity:    field.NewVelocityField[V](g.Rows, g.Cols),
		Flow:        field.NewVelocityField[FV](g.Rows, g.Cols),
		Density:     density,
		PTraits:     pTraits,
		VTraits:     vTraits,
		FVTraits:    fvTraits,
		Gravity:     gravity,
		Rng:         rng,
		TotalDeltaP: pTraits.FromInt(0),
	}
}

// opposite maps a direction index to its opposite: up<->down, left<->right.
func opposite(d int) int {
	switch d {
	case field.Up:
		return field.Down
	case field.Down:
		return field.Up
	case field.Left:
		return field.Right
	default:
		return field.Left
	}
}

// Tick advances the simulation by one round: gravity, pressure
// relaxation, flow propagation to convergence, kinetic-energy
// reconciliation, and probabilistic migration, in that order. It
// returns whether phase E moved at least one cell, the signal the
// driver uses to decide whether to print the field.
func (s *Simulation[P, V, FV]) Tick() bool {
	s.TotalDeltaP = s.PTraits.FromInt(0)
	s.applyGravity()
	s.relaxPressure()
	s.propagateFlowPhase()
	s.reconcileKineticEnergy()
	moved := s.migrate()
	s.TickCount++
	return moved
}

// applyGravity is phase A: every non-'#' cell whose south neighbor is
// non-'#' gains gravity in its downward velocity component.
func (s *Simulation[P, V, FV]) applyGravity() {
	g := s.Grid
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Field[r][c] == '#' {
				continue
			}
			sr, sc := g.Neighbor(r, c, field.Down)
			if !g.IsOpen(sr, sc) {
				continue
			}
			slot := s.Velocity.At(r, c, field.Down)
			*slot = (*slot).Add(s.Gravity)
		}
	}
}

// relaxPressure is phase B: snapshot p into old_p, then for every open
// cell and every direction whose neighbor has lower old_p, push force
// into the neighbor's back-pointing velocity component (contr),
// spilling into this cell's own velocity and pressure once contr is
// exhausted.
func (s *Simulation[P, V, FV]) relaxPressure() {
	g := s.Grid
	s.Cells.SnapshotOldP()
	zeroV := s.VTraits.FromInt(0)

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Field[r][c] == '#' {
				continue
			}
			for d := 0; d < 4; d++ {
				nr, nc := g.Neighbor(r, c, d)
				if !g.IsOpen(nr, nc) {
					continue
				}
				if s.Cells.OldP[nr][nc].Cmp(s.Cells.OldP[r][c]) >= 0 {
					continue
				}

				deltaP := s.Cells.OldP[r][c].Sub(s.Cells.OldP[nr][nc])
				forceV := scalar.Convert[V](s.VTraits, deltaP)

				contr := s.Velocity.At(nr, nc, opposite(d))
				rhoNeighbor := s.VTraits.FromFloat64(s.Density.Get(g.Field[nr][nc]))
				contrForce := (*contr).Mul(rhoNeighbor)

				if contrForce.Cmp(forceV) >= 0 {
					*contr = (*contr).Sub(forceV.Div(rhoNeighbor))
					continue
				}

				forceV = forceV.Sub(contrForce)
				*contr = zeroV

				out := s.Velocity.At(r, c, d)
				rhoSelf := s.VTraits.FromFloat64(s.Density.Get(g.Field[r][c]))
				*out = (*out).Add(forceV.Div(rhoSelf))

				forceP := scalar.Convert[P](s.PTraits, forceV)
				dirsP := s.PTraits.FromInt(g.Dirs[r][c])
				delta := forceP.Div(dirsP)
				s.Cells.Pressure[r][c] = s.Cells.Pressure[r][c].Sub(delta)
				s.TotalDeltaP = s.TotalDeltaP.Sub(delta)
			}
		}
	}
}

// reconcileKineticEnergy is phase D: converts the flow actually
// committed in phase C back into pressure at whichever side absorbed
// the difference between requested and granted velocity.
func (s *Simulation[P, V, FV]) reconcileKineticEnergy() {
	g := s.Grid
	zeroV := s.VTraits.FromInt(0)
	pointEight := s.VTraits.FromFloat64(0.8)

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Field[r][c] == '#' {
				continue
			}
			for d := 0; d < 4; d++ {
				slot := s.Velocity.At(r, c, d)
				oldV := *slot
				if oldV.Cmp(zeroV) <= 0 {
					continue
				}

				newV := scalar.Convert[V](s.VTraits, *s.Flow.At(r, c, d))
				if newV.Cmp(oldV) > 0 {
					panic("sim: phase D observed flow exceeding prior velocity")
				}
				*slot = newV

				rho := s.VTraits.FromFloat64(s.Density.Get(g.Field[r][c]))
				force := oldV.Sub(newV).Mul(rho)
				if g.Field[r][c] == '.' {
					force = force.Mul(pointEight)
				}

				forceP := scalar.Convert[P](s.PTraits, force)
				nr, nc := g.Neighbor(r, c, d)
				if !g.IsOpen(nr, nc) {
					dirsP := s.PTraits.FromInt(g.Dirs[r][c])
					delta := forceP.Div(dirsP)
					s.Cells.Pressure[r][c] = s.Cells.Pressure[r][c].Add(delta)
					s.TotalDeltaP = s.TotalDeltaP.Add(delta)
				} else {
					dirsP := s.PTraits.FromInt(g.Dirs[nr][nc])
					delta := forceP.Div(dirsP)
					s.Cells.Pressure[nr][nc] = s.Cells.Pressure[nr][nc].Add(delta)
					s.TotalDeltaP = s.TotalDeltaP.Add(delta)
				}
			}
		}
	}
}

// LogField writes "Tick <i>:" followed by the field rows to the
// shared log sink. The driver calls this only when Tick reported that
// phase E moved at least one cell.
func (s *Simulation[P, V, FV]) LogField(tickIndex int) {
	logging.Logf("Tick %d:", tickIndex)
	for r := 0; r < s.Grid.Rows; r++ {
		logging.Logf("%s", string(s.Grid.Field[r]))
	}
}
