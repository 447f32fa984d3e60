// Package corpus defines the row format shared by every pipeline stage
// and the file-convention operations (separate, merge, combine) that
// reorganize rows between stages.
//
// A row is one logical unit per line: a play identifier, a character
// name, and that character's ordered text fields, joined by a single
// delimiter (tab or space).
package corpus

import (
	"fmt"
	"io"
	"strings"
)

// Row is one character's speech from one play.
type Row struct {
	ID        string
	Character string
	Fields    []string
}

// Key returns the (play, character) identity of the row.
func (r Row) Key() string {
	return r.ID + "/" + r.Character
}

// DetectDelimiter returns the field delimiter for a payload: tab when any
// tab is present, otherwise space.
func DetectDelimiter(s string) string {
	if strings.Contains(s, "\t") {
		return "\t"
	}
	return " "
}

// ParseRows parses delimiter-separated rows. When delim is empty the
// delimiter is detected per line, so mixed output from different stages
// still parses. Blank lines are skipped. A line with fewer than two
// fields is an error: every row needs at least an identifier and a
// character name.
func ParseRows(s, delim string) ([]Row, error) {
	var rows []Row
	for i, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		d := delim
		if d == "" {
			d = DetectDelimiter(line)
		}
		fields := strings.Split(line, d)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected at least identifier and character, got %d field(s): %q",
				i+1, len(fields), line)
		}
		rows = append(rows, Row{ID: fields[0], Character: fields[1], Fields: fields[2:]})
	}
	return rows, nil
}

// ReadRows parses rows from a reader.
func ReadRows(r io.Reader, delim string) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return ParseRows(string(data), delim)
}

// FormatRows renders rows as delimiter-separated lines with a trailing
// newline. When the delimiter is a space, character names have internal
// spaces replaced by hyphens so the name survives a round trip.
func FormatRows(rows []Row, delim string) string {
	if delim == "" {
		delim = " "
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		name := row.Character
		if delim == " " {
			name = strings.ReplaceAll(name, " ", "-")
		}
		parts := append([]string{row.ID, name}, row.Fields...)
		lines[i] = strings.Join(parts, delim)
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteRows writes rows to a writer.
func WriteRows(w io.Writer, rows []Row, delim string) error {
	_, err := io.WriteString(w, FormatRows(rows, delim))
	return err
}
