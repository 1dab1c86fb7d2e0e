package sim

import (
	"fmt"

	"fluidsim/scalar"
)

// cellState is a scratch record holding the pressure and all four
// velocity components for one cell. swapCell uses one of these as the
// temporary in the classic tmp/a/b exchange, the same shape as the
// originating implementation's swap(x,y); swap(nx,ny); swap(x,y)
// sequence collapsed into a single assignment pair. The field
// character itself is exchanged separately via field.Grid.Swap, since
// Grid owns that storage.
type cellState[P scalar.Value[P], V scalar.Value[V]] struct {
	pressure P
	velocity [4]V
}

func (s *Simulation[P, V, FV]) snapshotCell(r, c int) cellState[P, V] {
	cs := cellState[P, V]{pressure: s.Cells.Pressure[r][c]}
	for d := 0; d < 4; d++ {
		cs.velocity[d] = *s.Velocity.At(r, c, d)
	}
	return cs
}

func (s *Simulation[P, V, FV]) restoreCell(r, c int, cs cellState[P, V]) {
	s.Cells.Pressure[r][c] = cs.pressure
	for d := 0; d < 4; d++ {
		*s.Velocity.At(r, c, d) = cs.velocity[d]
	}
}

// swapCell exchanges the (field, pressure, velocity) triple between
// two cells: the field character via Grid.Swap, pressure and velocity
// via the cellState snapshot/restore pair.
func (s *Simulation[P, V, FV]) swapCell(x, y, nx, ny int) {
	tmp := s.snapshotCell(x, y)
	s.restoreCell(x, y, s.snapshotCell(nx, ny))
	s.restoreCell(nx, ny, tmp)
	s.Grid.Swap(x, y, nx, ny)
}

// moveProb sums the outgoing velocity over directions whose neighbor
// is open and not yet closed this round, converted to scalar P.
func (s *Simulation[P, V, FV]) moveProb(x, y int) P {
	sum := s.VTraits.FromInt(0)
	zeroV := s.VTraits.FromInt(0)
	for d := 0; d < 4; d++ {
		nx, ny := s.Grid.Neighbor(x, y, d)
		if !s.Grid.IsOpen(nx, ny) || s.Grid.LastUse[nx][ny] == s.UT {
			continue
		}
		v := *s.Velocity.At(x, y, d)
		if v.Cmp(zeroV) >= 0 {
			sum = sum.Add(v)
		}
	}
	return scalar.Convert[P](s.PTraits, sum)
}

// migrate is phase E: for every open cell not yet closed this round,
// draw a uniform sample and either commit to a probabilistic move or
// fall back to closing off the cell via the stop propagator. Returns
// whether any cell actually swapped field contents this tick.
func (s *Simulation[P, V, FV]) migrate() bool {
	s.UT += 2
	moved := 0

	for r := 0; r < s.Grid.Rows; r++ {
		for c := 0; c < s.Grid.Cols; c++ {
			if s.Grid.Field[r][c] == '#' || s.Grid.LastUse[r][c] == s.UT {
				continue
			}
			u := s.PTraits.Random01(s.Rng)
			m := s.moveProb(r, c)
			if u.Cmp(m) < 0 {
				before := s.swapCount
				s.propagateMove(r, c, true)
				moved += s.swapCount - before
			} else {
				s.propagateStop(r, c, true)
			}
		}
	}

	s.MigratedLast = moved
	return moved > 0
}

// propagateMove is the probabilistic migration DFS: it repeatedly
// weights the open, unclosed outgoing directions by velocity, draws a
// direction proportional to that weight, and either commits (if the
// chosen neighbor is already on-stack) or recurses into it. On a
// successful non-first return it performs the three-way swap that
// actually moves the cell's contents.
func (s *Simulation[P, V, FV]) propagateMove(x, y int, isFirst bool) bool {
	if isFirst {
		s.Grid.LastUse[x][y] = s.UT - 1
	} else {
		s.Grid.LastUse[x][y] = s.UT
	}

	zeroV := s.VTraits.FromInt(0)
	var ret bool
	var tx, ty int

	for {
		var tres [4]V
		var valid [4]bool
		var nbrs [4][2]int
		running := zeroV

		for d := 0; d < 4; d++ {
			nx, ny := s.Grid.Neighbor(x, y, d)
			nbrs[d] = [2]int{nx, ny}
			if s.Grid.IsOpen(nx, ny) && s.Grid.LastUse[nx][ny] != s.UT {
				v := *s.Velocity.At(x, y, d)
				if v.Cmp(zeroV) > 0 {
					running = running.Add(v)
					valid[d] = true
				}
			}
			tres[d] = running
		}

		sum := tres[3]
		if sum.Cmp(zeroV) == 0 {
			ret = false
			break
		}

		u := s.VTraits.Random01(s.Rng).Mul(sum)
		chosen := -1
		for d := 0; d < 4; d++ {
			if tres[d].Cmp(u) > 0 {
				chosen = d
				break
			}
		}
		if chosen == -1 || !valid[chosen] {
			panic(fmt.Sprintf("sim: zero-weighted direction chosen during move propagation at (%d,%d)", x, y))
		}

		tx, ty = nbrs[chosen][0], nbrs[chosen][1]
		if s.Grid.LastUse[tx][ty] == s.UT-1 {
			ret = true
		} else {
			ret = s.propagateMove(tx, ty, false)
		}
		if ret {
			break
		}
	}

	s.Grid.LastUse[x][y] = s.UT
	for d := 0; d < 4; d++ {
		nx, ny := s.Grid.Neighbor(x, y, d)
		if !s.Grid.IsOpen(nx, ny) || s.Grid.LastUse[nx][ny] >= s.UT-1 {
			continue
		}
		if (*s.Velocity.At(x, y, d)).Cmp(zeroV) < 0 {
			s.propagateStop(nx, ny, false)
		}
	}

	if ret && !isFirst {
		s.swapCell(x, y, tx, ty)
		s.swapCount++
	}
	return ret
}
