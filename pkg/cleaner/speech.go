package cleaner

import (
	"github.com/olivercalder/character-text-pipeline/pkg/cleaner/markup"
)

// NewSpeech returns the standard cleaning chain for speech fields:
// markup stripping, then ASCII transliteration, then punctuation, case,
// and whitespace normalization. If cfg is nil the default markup tables
// are used.
func NewSpeech(cfg *markup.Config) *ChainCleaner {
	return NewChain(
		markup.New(cfg),
		NewASCII(),
		NewPunct(),
	)
}
