package corpus

import (
	"fmt"
	"sort"

	"github.com/olivercalder/character-text-pipeline/pkg/dict"
)

// CharacterKey identifies one raw character name within one play.
type CharacterKey struct {
	ID   string
	Name string
}

// LoadCharacterMap reads a character dictionary file with lines of the
// form ID<sep>raw-name<sep>canonical-name.
func LoadCharacterMap(path, sep string) (map[CharacterKey]string, error) {
	lines, err := dict.Lines(path)
	if err != nil {
		return nil, err
	}
	names := make(map[CharacterKey]string, len(lines))
	for _, line := range lines {
		fields, err := dict.SplitEntry(line, sep, 3)
		if err != nil {
			return nil, fmt.Errorf("character dictionary %s: %w", path, err)
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("character dictionary %s: entry has %d fields, want 3: %q",
				path, len(fields), line)
		}
		names[CharacterKey{ID: fields[0], Name: fields[1]}] = fields[2]
	}
	return names, nil
}

// Combine translates raw or abbreviated character names to their
// canonical names and concatenates the speech of rows that map to the
// same character. Names absent from the dictionary pass through
// unchanged. Output is sorted by (ID, character); the relative order of
// speech across combined rows is not preserved, an accepted trade-off of
// this stage.
func Combine(rows []Row, names map[CharacterKey]string) []Row {
	merged := make(map[CharacterKey]*Row)
	var keys []CharacterKey
	for _, row := range rows {
		name := row.Character
		if canonical, ok := names[CharacterKey{ID: row.ID, Name: name}]; ok {
			name = canonical
		}
		key := CharacterKey{ID: row.ID, Name: name}
		if existing, ok := merged[key]; ok {
			existing.Fields = append(existing.Fields, row.Fields...)
			continue
		}
		merged[key] = &Row{ID: row.ID, Character: name, Fields: append([]string(nil), row.Fields...)}
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ID != keys[j].ID {
			return keys[i].ID < keys[j].ID
		}
		return keys[i].Name < keys[j].Name
	})
	out := make([]Row, len(keys))
	for i, key := range keys {
		out[i] = *merged[key]
	}
	return out
}
