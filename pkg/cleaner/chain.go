package cleaner

import (
	"fmt"
	"strings"
)

// ChainCleaner runs a fixed sequence of cleaning stages, feeding each
// stage's output into the next. The speech-cleaning pipeline is built
// this way: markup removal, then transliteration, then punctuation.
type ChainCleaner struct {
	stages []Cleaner
}

// NewChain composes the given stages into a single cleaner. Stages run
// in the order given.
func NewChain(stages ...Cleaner) *ChainCleaner {
	return &ChainCleaner{
		stages: stages,
	}
}

// Clean runs every stage in order. A stage failure aborts the chain
// with the failing stage named; no partial output is returned.
func (c *ChainCleaner) Clean(text string) (string, error) {
	var err error
	for _, stage := range c.stages {
		text, err = stage.Clean(text)
		if err != nil {
			return "", fmt.Errorf("%s stage: %w", stage.Name(), err)
		}
	}
	return text, nil
}

// Name returns the names of all stages in run order.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.stages))
	for i, stage := range c.stages {
		names[i] = stage.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
