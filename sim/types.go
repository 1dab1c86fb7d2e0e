package sim

import (
	"fmt"
	"strconv"
	"strings"

	"fluidsim/field"
)

// TypeTag names a scalar representation the way the configuration
// surface spells it: "FLOAT", "DOUBLE", "FIXED(N,K)", or
// "FAST_FIXED(N,K)". Only N=32, K=16 is wired to a concrete Go type;
// any other (N,K) is accepted by ParseTypeTag but rejected by Dispatch.
type TypeTag struct {
	Kind string
	N, K int
}

func (t TypeTag) String() string {
	switch t.Kind {
	case "FIXED", "FAST_FIXED":
		return fmt.Sprintf("%s(%d, %d)", t.Kind, t.N, t.K)
	default:
		return t.Kind
	}
}

// ParseTypeTag parses one of the four textual forms from spec §6.
func ParseTypeTag(s string) (TypeTag, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "FLOAT":
		return TypeTag{Kind: "FLOAT"}, nil
	case s == "DOUBLE":
		return TypeTag{Kind: "DOUBLE"}, nil
	case strings.HasPrefix(s, "FAST_FIXED(") && strings.HasSuffix(s, ")"):
		n, k, err := parseNK(s[len("FAST_FIXED(") : len(s)-1])
		if err != nil {
			return TypeTag{}, err
		}
		return TypeTag{Kind: "FAST_FIXED", N: n, K: k}, nil
	case strings.HasPrefix(s, "FIXED(") && strings.HasSuffix(s, ")"):
		n, k, err := parseNK(s[len("FIXED(") : len(s)-1])
		if err != nil {
			return TypeTag{}, err
		}
		return TypeTag{Kind: "FIXED", N: n, K: k}, nil
	default:
		return TypeTag{}, fmt.Errorf("sim: unrecognized type tag %q", s)
	}
}

func parseNK(inner string) (int, int, error) {
	parts := strings.Split(inner, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("sim: expected \"N,K\" inside type tag, got %q", inner)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("sim: parsing N: %w", err)
	}
	k, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("sim: parsing K: %w", err)
	}
	return n, k, nil
}

// RunConfig is the out-of-scope type-selection/dimension-registration
// interface from spec §6: three scalar tags consumed in order as
// P, V, FV, plus a set of compile-time dimension pairs. Go's grid
// storage runs identical code regardless of whether Dims matches (see
// field.RegisteredMatch); Dims is kept only so this struct's shape
// matches the specified interface.
type RunConfig struct {
	P, V, FV TypeTag
	Dims     []field.Dims
}
