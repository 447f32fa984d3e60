package phoneme

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/olivercalder/character-text-pipeline/pkg/dict"
)

// Unknowns counts occurrences of words absent from the phoneme
// dictionary.
type Unknowns map[string]int

// LoadUnknowns reads an existing unknowns tsv file, one word and count
// per line, so counts accumulate across pipeline runs.
func LoadUnknowns(path string) (Unknowns, error) {
	lines, err := dict.Lines(path)
	if err != nil {
		return nil, err
	}
	unknowns := make(Unknowns, len(lines))
	for _, line := range lines {
		fields, err := dict.SplitEntry(line, "\t", 2)
		if err != nil {
			return nil, fmt.Errorf("unknowns file %s: %w", path, err)
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("unknowns file %s: entry %q has a non-numeric count", path, line)
		}
		unknowns[strings.ToLower(fields[0])] = count
	}
	return unknowns, nil
}

// Add increments the count for a word.
func (u Unknowns) Add(word string) {
	u[word]++
}

// Merge adds the counts from other into u.
func (u Unknowns) Merge(other Unknowns) {
	for word, count := range other {
		u[word] += count
	}
}

// Total returns the number of unknown word occurrences.
func (u Unknowns) Total() int {
	total := 0
	for _, count := range u {
		total += count
	}
	return total
}

// WriteTSV writes the unknowns as tab-separated word and count lines,
// most frequent first, ties broken alphabetically.
func (u Unknowns) WriteTSV(w io.Writer) error {
	words := make([]string, 0, len(u))
	for word := range u {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if u[words[i]] != u[words[j]] {
			return u[words[i]] > u[words[j]]
		}
		return words[i] < words[j]
	})
	for _, word := range words {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", word, u[word]); err != nil {
			return err
		}
	}
	return nil
}

// Suggest returns up to n dictionary words closest to word by
// Levenshtein distance, nearest first. It helps when triaging the
// unknowns report, where most entries are archaic spellings one or two
// edits away from a dictionary word.
func (d *Dict) Suggest(word string, n int) []string {
	if n <= 0 || len(d.keys) == 0 {
		return nil
	}
	word = strings.ToLower(word)
	type candidate struct {
		word     string
		distance int
	}
	candidates := make([]candidate, 0, len(d.keys))
	for _, key := range d.keys {
		candidates = append(candidates, candidate{key, fuzzy.LevenshteinDistance(word, key)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	suggestions := make([]string, n)
	for i := range suggestions {
		suggestions[i] = candidates[i].word
	}
	return suggestions
}
