package extractor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const teiSample = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <text>
    <body>
      <div type="scene">
        <sp>
          <speaker>Hamlet</speaker>
          <l>To be, or not to be</l>
          <l>that is the <hi>question</hi></l>
        </sp>
        <sp>
          <speaker>Ophelia</speaker>
          <p>Good my lord,</p>
        </sp>
        <sp>
          <speaker>Hamlet</speaker>
          <l>I humbly thanke you</l>
        </sp>
      </div>
    </body>
  </text>
</TEI>`

func TestExtract(t *testing.T) {
	e := New()
	rows, err := e.Extract(strings.NewReader(teiSample), "A08360")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (one per speaker)", len(rows))
	}

	// Speakers are sorted.
	if rows[0].Character != "Hamlet" || rows[1].Character != "Ophelia" {
		t.Errorf("speakers = %q, %q", rows[0].Character, rows[1].Character)
	}
	if rows[0].ID != "A08360" {
		t.Errorf("play ID = %q", rows[0].ID)
	}

	// Hamlet's speech from both blocks, in document order.
	hamlet := rows[0].Fields
	if len(hamlet) != 3 {
		t.Fatalf("Hamlet has %d fragments, want 3: %v", len(hamlet), hamlet)
	}
	if hamlet[0] != "<l>To be, or not to be</l>" {
		t.Errorf("first fragment = %q", hamlet[0])
	}
	if !strings.Contains(hamlet[1], "<hi>question</hi>") {
		t.Errorf("nested markup not preserved: %q", hamlet[1])
	}
	if hamlet[2] != "<l>I humbly thanke you</l>" {
		t.Errorf("third fragment = %q", hamlet[2])
	}

	if rows[1].Fields[0] != "<p>Good my lord,</p>" {
		t.Errorf("Ophelia fragment = %q", rows[1].Fields[0])
	}
}

func TestExtractNestedLines(t *testing.T) {
	doc := `<TEI xmlns="http://www.tei-c.org/ns/1.0"><text><sp>
		<speaker>Chorus</speaker>
		<lg><l>outer <l>inner</l> rest</l></lg>
	</sp></text></TEI>`

	e := New()
	rows, err := e.Extract(strings.NewReader(doc), "B")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	// The nested <l> is part of its parent's fragment, not a second one.
	if len(rows[0].Fields) != 1 {
		t.Fatalf("got %d fragments, want 1: %v", len(rows[0].Fields), rows[0].Fields)
	}
	if !strings.Contains(rows[0].Fields[0], "<l>inner</l>") {
		t.Errorf("nested line missing from parent fragment: %q", rows[0].Fields[0])
	}
}

func TestExtractSkipsSpeakerlessBlocks(t *testing.T) {
	doc := `<TEI xmlns="http://www.tei-c.org/ns/1.0"><text>
		<sp><l>orphaned speech</l></sp>
		<sp><speaker>Ghost</speaker><l>marke me</l></sp>
	</text></TEI>`

	e := New()
	rows, err := e.Extract(strings.NewReader(doc), "C")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(rows) != 1 || rows[0].Character != "Ghost" {
		t.Errorf("rows = %+v, want only Ghost", rows)
	}
}

func TestExtractNoSpeech(t *testing.T) {
	doc := `<TEI xmlns="http://www.tei-c.org/ns/1.0"><text><body><p>front matter only</p></body></text></TEI>`
	e := New()
	rows, err := e.Extract(strings.NewReader(doc), "D")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %+v", rows)
	}
}

func TestExtractMalformed(t *testing.T) {
	e := New()
	if _, err := e.Extract(strings.NewReader("<TEI><text><sp>"), "E"); err == nil {
		t.Error("expected parse error for truncated document")
	}
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A99999.xml")
	if err := os.WriteFile(path, []byte(teiSample), 0o644); err != nil {
		t.Fatal(err)
	}
	e := New()
	rows, err := e.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile() error: %v", err)
	}
	if len(rows) == 0 || rows[0].ID != "A99999" {
		t.Errorf("play ID from filename = %v", rows)
	}
}

func TestExtractFileMissing(t *testing.T) {
	e := New()
	if _, err := e.ExtractFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}
