package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SeparateOptions controls how rows are split into per-character files.
type SeparateOptions struct {
	// Dir is the output directory. Empty means the current directory.
	Dir string

	// MatchDirs sorts character files into per-play subdirectories named
	// after the play identifier.
	MatchDirs bool

	// Delimiter joins a row's fields in the file body. Empty means space.
	Delimiter string
}

// Separate writes each row's speech to its own file, named
// <ID>_<Character>.txt. The identifier and character name live only in
// the filename; the file body is the joined fields.
func Separate(rows []Row, opts SeparateOptions) error {
	delim := opts.Delimiter
	if delim == "" {
		delim = " "
	}
	for _, row := range rows {
		dir := opts.Dir
		if opts.MatchDirs {
			dir = filepath.Join(dir, row.ID)
		}
		if dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		path := filepath.Join(dir, row.ID+"_"+row.Character+".txt")
		body := strings.Join(row.Fields, delim)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
