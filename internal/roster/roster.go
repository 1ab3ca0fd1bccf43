// Package roster loads the student roster used to resolve a student number
// to a display name.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Roster maps student numbers to full names. It is loaded once at startup;
// the roster file is reference data, not part of the persisted state.
type Roster struct {
	names map[string]string
}

// Load reads a comma-delimited roster file. The header row is skipped; each
// remaining row is number, surname, first name, and the full name is
// assembled as "first name surname". Short rows are ignored.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	names := make(map[string]string)
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		number := strings.TrimSpace(row[0])
		if number == "" {
			continue
		}
		names[number] = strings.TrimSpace(row[2]) + " " + strings.TrimSpace(row[1])
	}
	return &Roster{names: names}, nil
}

// Empty returns a roster with no entries, for deployments without a roster
// file.
func Empty() *Roster {
	return &Roster{names: map[string]string{}}
}

// Lookup resolves a student number to a full name.
func (r *Roster) Lookup(number string) (string, bool) {
	name, ok := r.names[number]
	return name, ok
}

// Len returns the number of roster entries.
func (r *Roster) Len() int {
	return len(r.names)
}
