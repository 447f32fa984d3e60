package extractor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/cleaner/markup"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
)

// CastExtractor pulls character names out of the dramatis personae
// divisions of TEI play transcripts. Unlike speech extraction, the names
// come out cleaned of markup, ready to seed a character dictionary.
type CastExtractor struct {
	cleaner *markup.Cleaner
	wrapTag string
}

// NewCast creates a CastExtractor. If cfg is nil the default markup
// tables are used.
func NewCast(cfg *markup.Config) *CastExtractor {
	if cfg == nil {
		cfg = markup.DefaultConfig()
	}
	return &CastExtractor{
		cleaner: markup.New(cfg),
		wrapTag: cfg.StructuralTags[0],
	}
}

// ExtractFile extracts cast entries from one TEI file. The play
// identifier is the file's base name without its extension.
func (e *CastExtractor) ExtractFile(filename string) ([]corpus.Row, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()

	base := filepath.Base(filename)
	playID := strings.TrimSuffix(base, filepath.Ext(base))
	rows, err := e.Extract(f, playID)
	if err != nil {
		return nil, fmt.Errorf("extracting cast from %s: %w", filename, err)
	}
	return rows, nil
}

// Extract parses a TEI document and returns one row per cast entry, in
// document order. The row identifier is the play identifier with the
// 1-based number of the enclosing dramatis personae division appended,
// and the row's character field holds the cleaned name and description.
// A document with no dramatis personae divisions yields no rows.
func (e *CastExtractor) Extract(r io.Reader, playID string) ([]corpus.Row, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	divs := xmlquery.Find(doc, "//*[local-name()='div' and @type='dramatis_personae']")
	if len(divs) == 0 {
		logger.Warn("no dramatis personae divisions found", "play", playID)
		return nil, nil
	}

	var rows []corpus.Row
	for i, div := range divs {
		id := fmt.Sprintf("%s-%d", playID, i+1)
		for _, entry := range e.entryNodes(div, playID) {
			name, err := e.cleanEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("cleaning cast entry in %s: %w", id, err)
			}
			if name == "" {
				continue
			}
			rows = append(rows, corpus.Row{ID: id, Character: name})
		}
	}
	return rows, nil
}

// entryNodes collects the elements of a dramatis personae division that
// carry one cast entry each. Entries are item elements, except when an
// item holds a table: then the first cell of each table row is the name
// and the rest of the row is discarded. Some transcripts use paragraphs
// instead of items, so those are collected as well.
func (e *CastExtractor) entryNodes(div *xmlquery.Node, playID string) []*xmlquery.Node {
	var entries []*xmlquery.Node
	for _, item := range xmlquery.Find(div, ".//*[local-name()='item']") {
		table := xmlquery.FindOne(item, ".//*[local-name()='table']")
		if table == nil {
			entries = append(entries, item)
			continue
		}
		for _, row := range xmlquery.Find(table, ".//*[local-name()='row']") {
			cell := xmlquery.FindOne(row, ".//*[local-name()='cell']")
			if cell == nil {
				logger.Warn("table row without cell in dramatis personae, skipping",
					"play", playID, "row", condense(row.OutputXML(true)))
				continue
			}
			entries = append(entries, cell)
		}
	}
	entries = append(entries, xmlquery.Find(div, ".//*[local-name()='p']")...)
	return entries
}

// cleanEntry serializes one entry element and runs it through the markup
// cleaner. The serialized markup is wrapped in a structural tag so the
// cleaner sees the same fragment shape speech fields have.
func (e *CastExtractor) cleanEntry(entry *xmlquery.Node) (string, error) {
	raw := condense(entry.OutputXML(true))
	if raw == "" {
		return "", nil
	}
	wrapped := "<" + e.wrapTag + ">" + raw + "</" + e.wrapTag + ">"
	cleaned, err := e.cleaner.Clean(wrapped)
	if err != nil {
		return "", err
	}
	return condense(cleaned), nil
}
