package cleaner

import (
	"strings"
)

// punctReplacer strips sentence punctuation and turns double hyphens into
// spaces. Single hyphens and apostrophes are kept: they are part of words
// in the corpus (contractions, compound names).
var punctReplacer = strings.NewReplacer(
	"--", " ",
	",", "",
	".", "",
	"?", "",
	"!", "",
	";", "",
	":", "",
	`"`, "",
	"(", "",
	")", "",
	"[", "",
	"]", "",
	"{", "",
	"}", "",
	"*", "",
)

// PunctCleaner removes punctuation, lowercases, and collapses whitespace.
// It is the final stage of the cleaning chain: its output is one line of
// space-separated lowercase words.
type PunctCleaner struct{}

// NewPunct creates a punctuation/case/whitespace cleaner.
func NewPunct() *PunctCleaner {
	return &PunctCleaner{}
}

// Clean normalizes the input to lowercase space-separated words.
func (c *PunctCleaner) Clean(text string) (string, error) {
	text = punctReplacer.Replace(text)
	text = strings.ToLower(text)
	return strings.Join(strings.Fields(text), " "), nil
}

// Name returns the cleaner type.
func (c *PunctCleaner) Name() string {
	return "punct"
}
