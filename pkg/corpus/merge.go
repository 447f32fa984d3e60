package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MergeOptions controls how per-character files are merged back into rows.
type MergeOptions struct {
	// Delimiter overrides the output delimiter. Empty means auto: tab if
	// any input file contains a tab, otherwise space.
	Delimiter string

	// FilenameSeparator splits a filename into its components. Default "_".
	FilenameSeparator string

	// LStrip and RStrip drop that many filename components from the left
	// and right before reading the identifier and character name, so
	// filenames like text_Ham_Hamlet_clean.txt can conform to the
	// ID_Character convention.
	LStrip int
	RStrip int
}

// Merge reads per-character files (the inverse of Separate) into rows.
// After separator splitting and component stripping, each filename must
// reduce to exactly ID and character name; all conflicting or missing
// files are reported together before any file is read.
func Merge(filenames []string, opts MergeOptions) ([]Row, error) {
	sep := opts.FilenameSeparator
	if sep == "" {
		sep = "_"
	}
	if err := checkFilenames(filenames, sep, opts.LStrip, opts.RStrip); err != nil {
		return nil, err
	}

	delim := opts.Delimiter
	contents := make([]string, len(filenames))
	for i, filename := range filenames {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filename, err)
		}
		contents[i] = string(data)
		if delim == "" && strings.Contains(contents[i], "\t") {
			delim = "\t"
		}
	}
	if delim == "" {
		delim = " "
	}

	rows := make([]Row, len(filenames))
	for i, filename := range filenames {
		id, character := splitFilename(filename, sep, opts.LStrip, opts.RStrip)
		rows[i] = Row{
			ID:        id,
			Character: character,
			Fields:    []string{strings.TrimSpace(contents[i])},
		}
	}
	return rows, nil
}

// checkFilenames verifies every file exists and splits into the right
// number of components, collecting all problems into one error.
func checkFilenames(filenames []string, sep string, lstrip, rstrip int) error {
	var notFound, invalid []string
	for _, filename := range filenames {
		info, err := os.Stat(filename)
		if err != nil || info.IsDir() {
			notFound = append(notFound, filename)
			continue
		}
		if len(strings.Split(stripExtension(filepath.Base(filename)), sep)) != lstrip+rstrip+2 {
			invalid = append(invalid, filename)
		}
	}
	var problems []string
	if len(notFound) > 0 {
		problems = append(problems, "files not found: "+strings.Join(notFound, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems,
			fmt.Sprintf("filenames do not split into ID and character (lstrip=%d, rstrip=%d): %s",
				lstrip, rstrip, strings.Join(invalid, ", ")))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func splitFilename(filename, sep string, lstrip, rstrip int) (id, character string) {
	parts := strings.Split(stripExtension(filepath.Base(filename)), sep)
	parts = parts[lstrip:]
	if rstrip > 0 {
		parts = parts[:len(parts)-rstrip]
	}
	return parts[0], parts[1]
}

func stripExtension(filename string) string {
	if idx := strings.LastIndexByte(filename, '.'); idx >= 0 {
		return filename[:idx]
	}
	return filename
}
