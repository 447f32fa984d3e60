// Package phoneme converts character speech from words into phoneme
// sequences using a CMU pronouncing dictionary, accumulating counts of
// words the dictionary does not cover.
package phoneme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
	"github.com/olivercalder/character-text-pipeline/pkg/dict"
)

// Dict maps lowercase words to their first listed pronunciation, each
// pronunciation being an ordered list of cmudict phonemes such as
// ["W", "ER1", "D"].
type Dict struct {
	words map[string][]string
	keys  []string
}

// LoadDict reads a phoneme dictionary with one entry per line:
//
//	word W ER1 D
//
// Columns are separated by sep, a single space by default. Emphasis
// digits on vowel phonemes are optional. When a word appears more than
// once, the first pronunciation wins.
func LoadDict(path, sep string) (*Dict, error) {
	if sep == "" {
		sep = " "
	}
	lines, err := dict.Lines(path)
	if err != nil {
		return nil, err
	}
	d := &Dict{words: make(map[string][]string, len(lines))}
	for _, line := range lines {
		var fields []string
		if sep == " " {
			fields = strings.Fields(line)
		} else {
			fields, err = dict.SplitEntry(line, sep, 2)
			if err != nil {
				return nil, fmt.Errorf("phoneme dictionary %s: %w", path, err)
			}
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("phoneme dictionary %s: entry %q has no pronunciation", path, line)
		}
		word := strings.ToLower(fields[0])
		if _, ok := d.words[word]; ok {
			continue
		}
		d.words[word] = fields[1:]
		d.keys = append(d.keys, word)
	}
	sort.Strings(d.keys)
	return d, nil
}

// Len returns the number of words in the dictionary.
func (d *Dict) Len() int {
	return len(d.words)
}

// Lookup returns the pronunciation for a word. The word is lowercased
// before lookup.
func (d *Dict) Lookup(word string) ([]string, bool) {
	pron, ok := d.words[strings.ToLower(word)]
	return pron, ok
}

// Options configures phoneme conversion.
type Options struct {
	// PreserveEmphasis keeps the trailing emphasis digit on vowel
	// phonemes, so "W ER1 D" is emitted instead of "W ER D".
	PreserveEmphasis bool
}

// Convert rewrites each row's speech fields into phoneme fields. Words
// missing from the dictionary are dropped from the output and counted
// in unknowns, which may be nil if callers do not want the counts.
// Conversions with different dictionaries compose, since phonemes
// already emitted never match a dictionary word again.
func (d *Dict) Convert(rows []corpus.Row, unknowns Unknowns, opts Options) []corpus.Row {
	out := make([]corpus.Row, len(rows))
	for i, row := range rows {
		var phonemes []string
		for _, field := range row.Fields {
			for _, word := range strings.Fields(field) {
				pron, ok := d.Lookup(word)
				if !ok {
					if unknowns != nil {
						unknowns.Add(strings.ToLower(word))
					}
					continue
				}
				for _, phon := range pron {
					phonemes = append(phonemes, stripEmphasis(phon, opts.PreserveEmphasis))
				}
			}
		}
		out[i] = corpus.Row{ID: row.ID, Character: row.Character, Fields: phonemes}
	}
	return out
}

func stripEmphasis(phon string, preserve bool) string {
	if preserve || phon == "" {
		return phon
	}
	if last := phon[len(phon)-1]; last >= '0' && last <= '9' {
		return phon[:len(phon)-1]
	}
	return phon
}
