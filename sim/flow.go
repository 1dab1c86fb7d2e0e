package sim

import "fluidsim/scalar"

// propagateFlowPhase is phase C: repeatedly sweeps every open cell not
// yet closed this round, calling the flow propagator with a
// one-unit budget, until a full sweep transfers nothing. The outer
// loop is bounded only by this convergence, never by an iteration cap.
func (s *Simulation[P, V, FV]) propagateFlowPhase() {
	s.Flow.Reset()
	one := s.PTraits.FromInt(1)
	zero := s.PTraits.FromInt(0)
	sweeps := 0

	for {
		s.UT += 2
		sweeps++
		productive := false
		for r := 0; r < s.Grid.Rows; r++ {
			for c := 0; c < s.Grid.Cols; c++ {
				if s.Grid.Field[r][c] == '#' {
					continue
				}
				if s.Grid.LastUse[r][c] == s.UT {
					continue
				}
				t, _, _ := s.propagateFlow(r, c, one)
				if t.Cmp(zero) > 0 {
					productive = true
				}
			}
		}
		if !productive {
			break
		}
	}
	s.SweepsLastC = sweeps
}

// propagateFlow is the recursive flow-augmenting DFS from (x, y) with
// remaining budget lim. It returns the amount transferred along the
// path that reached it, whether it successfully propagated flow
// onward, and the endpoint cell that terminated the chain (used by the
// caller to break cycles: a return to the originator is not extended
// further).
func (s *Simulation[P, V, FV]) propagateFlow(x, y int, lim P) (P, bool, [2]int) {
	s.Grid.LastUse[x][y] = s.UT - 1
	ret := s.PTraits.FromInt(0)

	for d := 0; d < 4; d++ {
		nx, ny := s.Grid.Neighbor(x, y, d)
		if !s.Grid.IsOpen(nx, ny) || s.Grid.LastUse[nx][ny] >= s.UT {
			continue
		}

		cap := scalar.Convert[FV](s.FVTraits, *s.Velocity.At(x, y, d))
		flow := *s.Flow.At(x, y, d)
		if cap.Cmp(flow) == 0 {
			continue
		}

		diff := scalar.Convert[P](s.PTraits, cap.Sub(flow))
		vp := scalar.Min(lim, diff)

		if s.Grid.LastUse[nx][ny] == s.UT-1 {
			slot := s.Flow.At(x, y, d)
			*slot = (*slot).Add(scalar.Convert[FV](s.FVTraits, vp))
			s.Grid.LastUse[x][y] = s.UT
			return vp, true, [2]int{nx, ny}
		}

		t, prop, end := s.propagateFlow(nx, ny, vp)
		ret = ret.Add(t)
		if prop {
			slot := s.Flow.At(x, y, d)
			*slot = (*slot).Add(scalar.Convert[FV](s.FVTraits, t))
			s.Grid.LastUse[x][y] = s.UT
			closesLoop := end[0] == x && end[1] == y
			return t, prop && !closesLoop, end
		}
	}

	s.Grid.LastUse[x][y] = s.UT
	return ret, false, [2]int{0, 0}
}
