package goldencheetah

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Table is a parsed CSV payload returned as served, without renaming. The
// athlete roster uses it.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t *Table) Len() int { return len(t.Rows) }

// Column returns the values of one named column.
func (t *Table) Column(name string) ([]string, bool) {
	for i, col := range t.Columns {
		if col != name {
			continue
		}
		out := make([]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			if i < len(row) {
				out = append(out, row[i])
			}
		}
		return out, true
	}
	return nil, false
}

func parseTable(body string) (*Table, error) {
	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing roster CSV: %w", err)
	}
	t := &Table{}
	if len(records) > 0 {
		t.Columns = records[0]
		t.Rows = records[1:]
	}
	return t, nil
}
