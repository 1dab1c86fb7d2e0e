package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fluidsim/field"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestReadGridFileParsesHeaderBodyAndTrailer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.txt")
	content := "3 3\n###\n#.#\n###\n0.01 1000 0.1\n"
	writeFile(t, path, content)

	in, err := ReadGridFile(path)
	if err != nil {
		t.Fatalf("ReadGridFile: %v", err)
	}
	if in.Grid.Rows != 3 || in.Grid.Cols != 3 {
		t.Fatalf("dims = %dx%d, want 3x3", in.Grid.Rows, in.Grid.Cols)
	}
	if in.Grid.Field[1][1] != '.' {
		t.Errorf("center cell = %q, want '.'", in.Grid.Field[1][1])
	}
	if in.RhoAir != 0.01 || in.RhoFluid != 1000 || in.Gravity != 0.1 {
		t.Errorf("trailer = (%v, %v, %v), want (0.01, 1000, 0.1)", in.RhoAir, in.RhoFluid, in.Gravity)
	}
}

func TestReadGridFileMissingFile(t *testing.T) {
	_, err := ReadGridFile(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestWriteCheckpointRowCountAndWidths(t *testing.T) {
	g := field.NewGrid(10, 10)
	for r := 1; r < 9; r++ {
		for c := 1; c < 9; c++ {
			g.Field[r][c] = '.'
		}
	}
	path := filepath.Join(t.TempDir(), "checkpoint.txt")
	if err := WriteCheckpoint(path, g, 0.01, 1000, 0.1); err != nil {
		t.Fatalf("WriteCheckpoint: %v", err)
	}

	data := readFile(t, path)
	lines := strings.Split(strings.TrimRight(data, "\n"), "\n")
	// header + 10 field rows + 3 trailer lines
	if len(lines) != 1+10+3 {
		t.Fatalf("checkpoint has %d lines, want %d", len(lines), 1+10+3)
	}
	for i := 1; i <= 10; i++ {
		if len(lines[i]) != g.Cols {
			t.Errorf("row %d length = %d, want %d", i, len(lines[i]), g.Cols)
		}
	}
}

func TestDispatchRejectsMixedTypes(t *testing.T) {
	cfg := RunConfig{
		P:  TypeTag{Kind: "FLOAT"},
		V:  TypeTag{Kind: "DOUBLE"},
		FV: TypeTag{Kind: "FLOAT"},
	}
	g := field.NewGrid(3, 3)
	input := &GridInput{Grid: g, RhoAir: 0.01, RhoFluid: 1000, Gravity: 0.1}
	if err := Dispatch(cfg, input, 1, 1337, RunOptions{}); err == nil {
		t.Fatal("expected Dispatch to reject mismatched P/V/FV tags")
	}
}

func TestDispatchZeroTicksIsNoOp(t *testing.T) {
	cfg := RunConfig{P: TypeTag{Kind: "FLOAT"}, V: TypeTag{Kind: "FLOAT"}, FV: TypeTag{Kind: "FLOAT"}}
	g := field.NewGrid(4, 3)
	g.Field[1][1] = '.'
	g.Field[2][1] = ' '
	input := &GridInput{Grid: g, RhoAir: 0.01, RhoFluid: 1000, Gravity: 0.1}

	if err := Dispatch(cfg, input, 0, 1337, RunOptions{}); err != nil {
		t.Fatalf("Dispatch with ticks=0: %v", err)
	}
	if g.Dirs[1][1] == 0 {
		t.Error("expected dirs to be computed even with ticks=0")
	}
	if g.Field[1][1] != '.' {
		t.Error("ticks=0 must not alter the field")
	}
}

func TestDispatchOnTickCallback(t *testing.T) {
	cfg := RunConfig{P: TypeTag{Kind: "FLOAT"}, V: TypeTag{Kind: "FLOAT"}, FV: TypeTag{Kind: "FLOAT"}}
	g := field.NewGrid(4, 3)
	g.Field[1][1] = '.'
	g.Field[2][1] = ' '
	input := &GridInput{Grid: g, RhoAir: 0.01, RhoFluid: 1000, Gravity: 0.1}

	var seen []TickStats
	err := Dispatch(cfg, input, 3, 1337, RunOptions{
		OnTick: func(ts TickStats) { seen = append(seen, ts) },
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("OnTick called %d times, want 3", len(seen))
	}
	for i, ts := range seen {
		if ts.Tick != i+1 {
			t.Errorf("seen[%d].Tick = %d, want %d", i, ts.Tick, i+1)
		}
	}
}

func TestParseTypeTagRoundTrip(t *testing.T) {
	cases := []string{"FLOAT", "DOUBLE", "FIXED(32, 16)", "FAST_FIXED(32, 16)"}
	for _, s := range cases {
		tag, err := ParseTypeTag(s)
		if err != nil {
			t.Fatalf("ParseTypeTag(%q): %v", s, err)
		}
		if got := tag.String(); got != s {
			t.Errorf("ParseTypeTag(%q).String() = %q, want %q", s, got, s)
		}
	}
}
