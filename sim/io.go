package sim

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fluidsim/field"
)

// GridInput is the parsed contents of an input grid file: the field
// and the trailing density/gravity triple.
type GridInput struct {
	Grid     *field.Grid
	RhoAir   float64
	RhoFluid float64
	Gravity  float64
}

// ReadGridFile parses the text format from spec §6: a header line
// "R C", then R lines of C+1 characters (the sentinel column is
// dropped; rows of only C characters, as WriteCheckpoint writes them,
// are accepted too), then a trailing "rho_air rho_fluid g" triple,
// either on one line or spread over several.
func ReadGridFile(path string) (*GridInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sim: opening grid file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("sim: grid file missing header line")
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("sim: grid header must be \"R C\", got %q", scanner.Text())
	}
	rows, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("sim: parsing R: %w", err)
	}
	cols, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("sim: parsing C: %w", err)
	}

	g := field.NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("sim: grid file truncated at row %d", r)
		}
		line := scanner.Text()
		if len(line) < cols {
			return nil, fmt.Errorf("sim: row %d too short: want %d+1 chars, got %d", r, cols, len(line))
		}
		for c := 0; c < cols; c++ {
			g.Field[r][c] = line[c]
		}
		// sentinel column (index cols) is discarded; the grid's own
		// border already stands in for it at c == cols-1 if r/c are
		// border rows, and interior rows never read past cols.
	}

	var trailer []string
	for len(trailer) < 3 && scanner.Scan() {
		trailer = append(trailer, strings.Fields(scanner.Text())...)
	}
	if len(trailer) == 0 {
		return nil, fmt.Errorf("sim: grid file missing trailing rho_air/rho_fluid/g line")
	}
	if len(trailer) != 3 {
		return nil, fmt.Errorf("sim: trailer must be \"rho_air rho_fluid g\", got %q", strings.Join(trailer, " "))
	}
	rhoAir, err := strconv.ParseFloat(trailer[0], 64)
	if err != nil {
		return nil, fmt.Errorf("sim: parsing rho_air: %w", err)
	}
	rhoFluid, err := strconv.ParseFloat(trailer[1], 64)
	if err != nil {
		return nil, fmt.Errorf("sim: parsing rho_fluid: %w", err)
	}
	gGrav, err := strconv.ParseFloat(trailer[2], 64)
	if err != nil {
		return nil, fmt.Errorf("sim: parsing g: %w", err)
	}

	return &GridInput{Grid: g, RhoAir: rhoAir, RhoFluid: rhoFluid, Gravity: gGrav}, nil
}

// WriteCheckpoint writes the text format from spec §6: header "R C",
// R field rows, then rho_air/rho_fluid/g each on their own line.
// Atomic replace is not required by spec and is not attempted here.
func WriteCheckpoint(path string, g *field.Grid, rhoAir, rhoFluid, gGrav float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sim: creating checkpoint file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %d\n", g.Rows, g.Cols)
	for r := 0; r < g.Rows; r++ {
		w.Write(g.Field[r])
		w.WriteByte('\n')
	}
	fmt.Fprintf(w, "%g\n", rhoAir)
	fmt.Fprintf(w, "%g\n", rhoFluid)
	fmt.Fprintf(w, "%g\n", gGrav)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("sim: flushing checkpoint file: %w", err)
	}
	return nil
}
