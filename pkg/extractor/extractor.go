// Package extractor pulls speaker-attributed speech out of TEI-XML play
// transcripts. It walks the parsed document for sp (speech) blocks and
// collects each speaker's raw line and paragraph fragments, still in
// markup form, for the cleaning stages downstream.
package extractor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
)

// Extractor extracts per-character raw speech rows from TEI documents.
type Extractor struct {
	// StructuralTags are the speech-carrying elements collected from each
	// sp block. Nested occurrences stay inside their parent's fragment.
	StructuralTags []string
}

// New creates an Extractor for the standard TEI line and paragraph tags.
func New() *Extractor {
	return &Extractor{StructuralTags: []string{"l", "p"}}
}

// ExtractFile extracts rows from one TEI file. The play identifier is the
// file's base name without its extension.
func (e *Extractor) ExtractFile(filename string) ([]corpus.Row, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()

	base := filepath.Base(filename)
	playID := strings.TrimSuffix(base, filepath.Ext(base))
	rows, err := e.Extract(f, playID)
	if err != nil {
		return nil, fmt.Errorf("extracting from %s: %w", filename, err)
	}
	return rows, nil
}

// Extract parses a TEI document and returns one row per speaker, sorted
// by speaker name. Within a row, fragments keep document order. Speech
// blocks without a speaker are skipped with a warning. A document with no
// speech blocks at all yields no rows.
func (e *Extractor) Extract(r io.Reader, playID string) ([]corpus.Row, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	parts := make(map[string][]string)
	for _, sp := range xmlquery.Find(doc, "//*[local-name()='sp']") {
		speaker := speakerName(sp)
		if speaker == "" {
			logger.Warn("speech block without speaker, skipping",
				"play", playID, "block", condense(sp.OutputXML(true)))
			continue
		}
		for _, lp := range e.childFragments(sp) {
			fragment := e.serializeFragment(lp, playID, speaker)
			if fragment != "" {
				parts[speaker] = append(parts[speaker], fragment)
			}
		}
	}
	if len(parts) == 0 {
		logger.Warn("no speaker-attributed speech found", "play", playID)
		return nil, nil
	}

	speakers := make([]string, 0, len(parts))
	for speaker := range parts {
		speakers = append(speakers, speaker)
	}
	sort.Strings(speakers)

	rows := make([]corpus.Row, len(speakers))
	for i, speaker := range speakers {
		rows[i] = corpus.Row{ID: playID, Character: speaker, Fields: parts[speaker]}
	}
	return rows, nil
}

// speakerName joins the text of all speaker descendants of a speech
// block. There is normally exactly one.
func speakerName(sp *xmlquery.Node) string {
	var pieces []string
	for _, s := range xmlquery.Find(sp, ".//*[local-name()='speaker']") {
		pieces = append(pieces, s.InnerText())
	}
	return condense(strings.Join(pieces, " "))
}

// childFragments finds the top-most line/paragraph elements under a
// speech block. The walk stops descending at the first structural
// element, so a line nested inside another line is carried as part of
// its parent's fragment rather than extracted twice.
func (e *Extractor) childFragments(n *xmlquery.Node) []*xmlquery.Node {
	var lps []*xmlquery.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		if e.structural(child.Data) {
			lps = append(lps, child)
			continue
		}
		lps = append(lps, e.childFragments(child)...)
	}
	return lps
}

func (e *Extractor) structural(tag string) bool {
	for _, t := range e.StructuralTags {
		if t == tag {
			return true
		}
	}
	return false
}

// serializeFragment renders one line/paragraph element back to markup
// text suitable for a row field: single line, no tabs, no text past the
// closing tag.
func (e *Extractor) serializeFragment(lp *xmlquery.Node, playID, speaker string) string {
	raw := strings.TrimSpace(lp.OutputXML(true))
	text := raw
	if idx := strings.LastIndexByte(raw, '>'); idx >= 0 && idx+1 < len(raw) {
		text = raw[:idx+1]
		logger.Warn("trailing text after fragment close, stripped",
			"play", playID, "speaker", speaker, "fragment", condense(raw))
	}
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")
	return strings.TrimSpace(text)
}

// condense collapses all whitespace runs to single spaces.
func condense(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
