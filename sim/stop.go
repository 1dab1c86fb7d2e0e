package sim

// propagateStop carves out the connected region of cells that cannot
// push outward and marks them closed for this round. Called with
// force=true from phase E's fallback branch, and with force=false
// internally as it recurses.
func (s *Simulation[P, V, FV]) propagateStop(x, y int, force bool) {
	zeroV := s.VTraits.FromInt(0)

	if !force {
		for d := 0; d < 4; d++ {
			nx, ny := s.Grid.Neighbor(x, y, d)
			if s.Grid.IsOpen(nx, ny) &&
				s.Grid.LastUse[nx][ny] < s.UT-1 &&
				(*s.Velocity.At(x, y, d)).Cmp(zeroV) > 0 {
				return
			}
		}
	}

	s.Grid.LastUse[x][y] = s.UT
	for d := 0; d < 4; d++ {
		nx, ny := s.Grid.Neighbor(x, y, d)
		if !s.Grid.IsOpen(nx, ny) || s.Grid.LastUse[nx][ny] == s.UT {
			continue
		}
		if (*s.Velocity.At(x, y, d)).Cmp(zeroV) <= 0 {
			s.propagateStop(nx, ny, false)
		}
	}
}
