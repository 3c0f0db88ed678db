// Package drift loads the per-step drift table written by the simulation and
// reduces it to one series per communication radius.
package drift

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column names after normalisation.
const (
	ColStep   = "step"
	ColDrift  = "s_drift"
	ColRadius = "r"

	// rawRadius is the radius column as the simulation names it.
	rawRadius = "comm_radius"
)

// Table is the CSV content with normalised column names. Records are kept
// verbatim.
type Table struct {
	Columns []string
	Records [][]string

	index map[string]int
}

// Row is one typed record of the table.
type Row struct {
	Step  float64
	R     string
	Drift float64
}

// Load reads the drift CSV at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a comma separated, double-quoted table from r. The header row
// is trimmed of surrounding whitespace and comm_radius is renamed to r.
func Read(r io.Reader) (*Table, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = ','

	recs, err := rdr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}

	t := &Table{
		Columns: normaliseHeader(recs[0]),
		Records: recs[1:],
	}
	t.index = make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t, nil
}

func normaliseHeader(hdr []string) []string {
	cols := make([]string, len(hdr))
	for i, h := range hdr {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == rawRadius {
			name = ColRadius
		}
		cols[i] = name
	}
	return cols
}

// Has reports whether the table has the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Len is the number of data records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Rows converts the step, r and s_drift columns of every record. Records
// with an empty or NaN value in any of them are skipped.
func (t *Table) Rows() ([]Row, error) {
	var missing []string
	for _, col := range []string{ColStep, ColRadius, ColDrift} {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing column(s) %s (have %s)",
			strings.Join(missing, ", "), strings.Join(t.Columns, ", "))
	}

	si, ri, di := t.index[ColStep], t.index[ColRadius], t.index[ColDrift]
	rows := make([]Row, 0, len(t.Records))
	for n, rec := range t.Records {
		line := n + 2 // header is line 1
		stepText := strings.TrimSpace(rec[si])
		r := strings.TrimSpace(rec[ri])
		driftText := strings.TrimSpace(rec[di])
		if stepText == "" || r == "" || driftText == "" {
			continue
		}

		step, err := strconv.ParseFloat(stepText, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse %s: %w", line, ColStep, err)
		}
		d, err := strconv.ParseFloat(driftText, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse %s: %w", line, ColDrift, err)
		}
		if math.IsNaN(step) || math.IsNaN(d) {
			continue
		}
		rows = append(rows, Row{Step: step, R: r, Drift: d})
	}
	return rows, nil
}
