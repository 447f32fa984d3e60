// Package dict loads the delimiter-separated dictionary files shared by
// the translation, phoneme, and character-combination stages.
package dict

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Lines reads a dictionary file and returns its data lines, skipping
// blanks and '#' comments. Dictionary files are small (word lists), so
// they are read whole.
func Lines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", path, err)
	}
	return lines, nil
}

// SplitEntry splits one dictionary line on the separator and verifies the
// minimum field count, including the line in the error for diagnosis.
func SplitEntry(line, sep string, minFields int) ([]string, error) {
	fields := strings.Split(line, sep)
	if len(fields) < minFields {
		return nil, fmt.Errorf("dictionary entry has %d fields, want at least %d: %q",
			len(fields), minFields, line)
	}
	return fields, nil
}
