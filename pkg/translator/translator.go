// Package translator substitutes archaic spellings and vocabulary with
// modern English forms using a priority-annotated dictionary, one exact
// word match at a time.
package translator

import (
	"fmt"
	"strings"

	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
	"github.com/olivercalder/character-text-pipeline/pkg/dict"
)

// Priority levels in the standardizer dictionary:
//
//	0 — always substitute (e.g. 'fore -> before)
//	1 — substitution keeps the archaic word form (e.g. abideth)
//	2 — substitution modernizes the word (e.g. amongst)
const (
	priorityAlways    = "0"
	priorityArchaic   = "1"
	priorityModernize = "2"
)

// Options configures dictionary loading.
type Options struct {
	// Separator between the columns of a dictionary entry. Default ":".
	Separator string

	// Modernize enables priority-2 substitutions. When false, archaic
	// word forms such as "altereth" are preserved.
	Modernize bool
}

// Translator maps words to their replacements.
type Translator struct {
	words map[string]string
}

// Load reads a translation dictionary with lines of the form
// old:modern:priority. The priority column may be omitted, in which case
// the substitution always applies. Commas in either word column denote
// spaces, so one entry can rewrite a word into a phrase.
func Load(path string, opts Options) (*Translator, error) {
	sep := opts.Separator
	if sep == "" {
		sep = ":"
	}
	lines, err := dict.Lines(path)
	if err != nil {
		return nil, err
	}
	words := make(map[string]string, len(lines))
	for _, line := range lines {
		fields, err := dict.SplitEntry(line, sep, 2)
		if err != nil {
			return nil, fmt.Errorf("translation dictionary %s: %w", path, err)
		}
		key := strings.ReplaceAll(fields[0], ",", " ")
		val := strings.ReplaceAll(fields[1], ",", " ")
		if len(fields) == 2 {
			words[key] = val
			continue
		}
		switch fields[2] {
		case priorityAlways, priorityArchaic:
			words[key] = val
		case priorityModernize:
			if opts.Modernize {
				words[key] = val
			}
		}
	}
	return &Translator{words: words}, nil
}

// Len returns the number of loaded substitutions.
func (t *Translator) Len() int {
	return len(t.words)
}

// Word returns the substitution for one word, or the word unchanged.
func (t *Translator) Word(word string) string {
	if replacement, ok := t.words[word]; ok {
		return replacement
	}
	return word
}

// Text substitutes every dictionary word in a space-delimited text.
// Matching is exact and whole-word, so "the" never rewrites "thee".
func (t *Translator) Text(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		words[i] = t.Word(word)
	}
	return strings.Join(words, " ")
}

// Translate substitutes every dictionary word in every row's speech.
// Identifier and character columns are never translated.
func (t *Translator) Translate(rows []corpus.Row) []corpus.Row {
	out := make([]corpus.Row, len(rows))
	for i, row := range rows {
		fields := make([]string, len(row.Fields))
		for j, field := range row.Fields {
			fields[j] = t.Text(field)
		}
		out[i] = corpus.Row{ID: row.ID, Character: row.Character, Fields: fields}
	}
	return out
}
