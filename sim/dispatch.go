package sim

import (
	"fmt"
	"math/rand"

	"fluidsim/field"
	"fluidsim/scalar"
)

// TickStats is the scalar-independent summary of one completed tick,
// handed to RunOptions.OnTick so callers (telemetry, the CLI) don't
// need to be generic over P/V/FV themselves.
type TickStats struct {
	Tick          int
	TotalDeltaP   float64
	Sweeps        int
	MigratedCells int
	Moved         bool
}

// RunOptions configures a Dispatch/Run call beyond the scalar tags.
type RunOptions struct {
	CheckpointPath  string
	CheckpointEvery int // ticks between checkpoints; <1 defaults to 10
	OnTick          func(TickStats)
}

// Dispatch realizes the out-of-scope type-selection interface from
// spec §6: a full textual-template combinatorial harness (as the
// original's TypeSelector) is out of scope per spec §1, so Dispatch
// only has to honor the interface shape for the small fixed set of
// supported combinations — here, the case where P, V, and FV all name
// the same representation. Mixed-type combinations are a valid input
// shape per the spec's general scalar model but are not wired to a
// concrete instantiation; Dispatch reports them as unsupported rather
// than guessing a conversion policy beyond the one already fixed in
// sim/flow.go and sim/simulation.go (convert-via-Float64).
func Dispatch(cfg RunConfig, input *GridInput, ticks int, seed int64, opts RunOptions) error {
	if cfg.P != cfg.V || cfg.V != cfg.FV {
		return fmt.Errorf("sim: Dispatch only supports P==V==FV; got P=%s V=%s FV=%s", cfg.P, cfg.V, cfg.FV)
	}

	tag := cfg.P
	switch tag.Kind {
	case "FLOAT":
		return runUniform(scalar.Float32Traits, input, ticks, seed, opts)
	case "DOUBLE":
		return runUniform(scalar.Float64Traits, input, ticks, seed, opts)
	case "FIXED":
		if tag.N != 32 || tag.K != 16 {
			return fmt.Errorf("sim: only FIXED(32, 16) is wired up, got %s", tag)
		}
		return runUniform(scalar.FixedTraits, input, ticks, seed, opts)
	case "FAST_FIXED":
		if tag.N != 32 || tag.K != 16 {
			return fmt.Errorf("sim: only FAST_FIXED(32, 16) is wired up, got %s", tag)
		}
		return runUniform(scalar.FastFixedTraits, input, ticks, seed, opts)
	default:
		return fmt.Errorf("sim: unknown type tag %q", tag.Kind)
	}
}

// runUniform builds and drives a Simulation[T, T, T] for the given
// traits. A ticks=0 run still computes dirs and nothing else, matching
// the no-op round-trip property from spec §8.
func runUniform[T scalar.Value[T]](traits scalar.Traits[T], input *GridInput, ticks int, seed int64, opts RunOptions) error {
	rng := rand.New(rand.NewSource(seed))
	density := field.NewDensityTable(input.RhoAir, input.RhoFluid)
	gravity := traits.FromFloat64(input.Gravity)

	input.Grid.ComputeDirs(0)
	s := NewSimulation[T, T, T](input.Grid, density, traits, traits, traits, gravity, rng)

	checkpointEvery := opts.CheckpointEvery
	if checkpointEvery < 1 {
		checkpointEvery = 10
	}

	for i := 1; i <= ticks; i++ {
		moved := s.Tick()
		if moved {
			s.LogField(i)
		}
		if opts.OnTick != nil {
			opts.OnTick(TickStats{
				Tick:          i,
				TotalDeltaP:   s.TotalDeltaP.Float64(),
				Sweeps:        s.SweepsLastC,
				MigratedCells: s.MigratedLast,
				Moved:         moved,
			})
		}
		if opts.CheckpointPath != "" && i%checkpointEvery == 0 {
			if err := WriteCheckpoint(opts.CheckpointPath, s.Grid, input.RhoAir, input.RhoFluid, input.Gravity); err != nil {
				return err
			}
		}
	}
	return nil
}
