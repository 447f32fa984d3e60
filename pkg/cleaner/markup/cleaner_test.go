package markup

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("nil config uses default", func(t *testing.T) {
		c := New(nil)
		if c == nil {
			t.Fatal("expected non-nil cleaner")
		}
		if c.config == nil {
			t.Fatal("expected non-nil config")
		}
		if c.config.GapTag != "gap" {
			t.Errorf("expected default gap tag, got %q", c.config.GapTag)
		}
	})

	t.Run("custom config is used", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Placeholder = "~"
		c := New(cfg)
		if c.config.Placeholder != "~" {
			t.Errorf("expected placeholder ~, got %q", c.config.Placeholder)
		}
	})
}

func TestName(t *testing.T) {
	c := New(nil)
	if c.Name() != "markup" {
		t.Errorf("expected name 'markup', got %q", c.Name())
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{
			name:     "plain line unchanged",
			fragment: `<l>To be or not to be</l>`,
			want:     "To be or not to be",
		},
		{
			name:     "deletes editorial note",
			fragment: `<l>The <note>printer's error</note> quick fox</l>`,
			want:     "The  quick fox",
		},
		{
			name:     "strips pass-through emphasis",
			fragment: `<l>The <hi rend="italic">quick</hi> fox</l>`,
			want:     "The quick fox",
		},
		{
			name:     "ampersand entity",
			fragment: `<l>thee &amp; me</l>`,
			want:     "thee and me",
		},
		{
			name:     "et cetera entity before bare ampersand",
			fragment: `<l>words &amp;c here</l>`,
			want:     "words etc here",
		},
		{
			name:     "end of line hyphen joins word halves",
			fragment: `<l>loo<g ref="char:EOLhyphen"/>king</l>`,
			want:     "looking",
		},
		{
			name:     "gap with letter extent",
			fragment: `<l>ab <gap extent="3 letter"/> cd</l>`,
			want:     "ab ^^^ cd",
		},
		{
			name:     "gap with non-letter extent yields nothing",
			fragment: `<l>ab <gap extent="2 line"/> cd</l>`,
			want:     "ab  cd",
		},
		{
			name:     "gap without extent yields nothing",
			fragment: `<l>ab <gap/> cd</l>`,
			want:     "ab  cd",
		},
		{
			name:     "multiple gaps resolved in order",
			fragment: `<l><gap extent="1 letter"/>ing and <gap extent="2 letter"/>ack</l>`,
			want:     "^ing and ^^ack",
		},
		{
			name:     "deletion nested deep inside pass-through",
			fragment: `<l><hi>before <q><seg>mid <note>deep <stage>deeper</stage></note> after</seg></q> end</hi></l>`,
			want:     "before mid  after end",
		},
		{
			name:     "stage direction inside line",
			fragment: `<l>Speak <stage>aside</stage> softly</l>`,
			want:     "Speak  softly",
		},
		{
			name:     "nested line inside paragraph",
			fragment: `<p>first <l>second</l> third</p>`,
			want:     "first second third",
		},
		{
			name:     "abbreviation glyph stripped without expansion",
			fragment: `<l>with <g ref="char:abper"/> thanks</l>`,
			want:     "with  thanks",
		},
		{
			name:     "abbreviation glyph with content dropped whole",
			fragment: `<l>pre <g ref="char:abus">u</g> post</l>`,
			want:     "pre  post",
		},
		{
			name:     "self-closing pass-through line break",
			fragment: `<l>one<lb/>two</l>`,
			want:     "onetwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			got, err := c.Clean(tt.fragment)
			if err != nil {
				t.Fatalf("Clean() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanPostcondition(t *testing.T) {
	// Any successfully returned text must be free of bracket characters.
	fragments := []string{
		`<l>plain text</l>`,
		`<l>a <hi>b</hi> c <note>d</note> e <gap extent="4 letter"/> f</l>`,
		`<p>deeply <lg><l>nested <seg>text</seg></l></lg></p>`,
		`<l>glyph <g ref="char:abque"/> here</l>`,
	}
	c := New(nil)
	for _, fragment := range fragments {
		got, err := c.Clean(fragment)
		if err != nil {
			t.Fatalf("Clean(%q) error: %v", fragment, err)
		}
		if strings.ContainsAny(got, "<>") {
			t.Errorf("Clean(%q) = %q contains markup brackets", fragment, got)
		}
	}
}

func TestCleanMalformed(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
	}{
		{"unclosed tag", `<l>The <note>quick</l>`},
		{"truncated fragment", `<l>The quick`},
		{"no root element", `just text`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			got, err := c.Clean(tt.fragment)
			if err == nil {
				t.Fatalf("expected error, got output %q", got)
			}
			var malformed *MalformedMarkupError
			if !errors.As(err, &malformed) {
				t.Errorf("expected MalformedMarkupError, got %T: %v", err, err)
			}
			if got != "" {
				t.Errorf("expected no partial output, got %q", got)
			}
		})
	}
}

func TestCleanUnknownTag(t *testing.T) {
	c := New(nil)
	_, err := c.Clean(`<l>foo <mystery>bar</mystery> baz</l>`)
	if err == nil {
		t.Fatal("expected error for unclassified tag")
	}
	var unknown *UnknownTagError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTagError, got %T: %v", err, err)
	}
	if unknown.Tag != "mystery" {
		t.Errorf("expected error to name tag 'mystery', got %q", unknown.Tag)
	}
}

func TestCleanResidualMarkup(t *testing.T) {
	// An unrecognized glyph reference survives every pass and must trip
	// the postcondition check rather than leak into the output.
	c := New(nil)
	_, err := c.Clean(`<l>a <g ref="char:xyz">b</g> c</l>`)
	if err == nil {
		t.Fatal("expected error for residual markup")
	}
	var residual *ResidualMarkupError
	if !errors.As(err, &residual) {
		t.Fatalf("expected ResidualMarkupError, got %T: %v", err, err)
	}
	if !strings.Contains(residual.Text, "char:xyz") {
		t.Errorf("expected offending text in error, got %q", residual.Text)
	}
}

func TestCleanAbbrevGlyphs(t *testing.T) {
	// Abbreviation glyph references are dropped during the render walk,
	// self-closing and content-bearing forms alike, with no stray closer
	// left for the postcondition check to trip over.
	c := New(nil)
	result := c.CleanWithStats(`<l>with <g ref="char:abper"/> and <g ref="char:abus">u</g> thanks</l>`)
	if result.Err != nil {
		t.Fatalf("CleanWithStats() error: %v", result.Err)
	}
	if result.Content != "with  and  thanks" {
		t.Errorf("Content = %q, want %q", result.Content, "with  and  thanks")
	}
	if result.Stats.AbbrevRefsStripped != 2 {
		t.Errorf("AbbrevRefsStripped = %d, want 2", result.Stats.AbbrevRefsStripped)
	}
}

func TestCleanPrefixDisambiguation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PassThroughTags = []string{"ab"}
	cfg.DeleteTags = []string{"abbr"}
	c := New(cfg)

	got, err := c.Clean(`<l><ab>keep</ab> <abbr>drop</abbr></l>`)
	if err != nil {
		t.Fatalf("Clean() error: %v", err)
	}
	if !strings.Contains(got, "keep") {
		t.Errorf("pass-through tag 'ab' content missing: %q", got)
	}
	if strings.Contains(got, "drop") {
		t.Errorf("tag 'abbr' was incorrectly treated as 'ab': %q", got)
	}
}

func TestCleanCustomPlaceholder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Placeholder = "~"
	c := New(cfg)
	got, err := c.Clean(`<l>mi<gap extent="2 letter"/>g</l>`)
	if err != nil {
		t.Fatalf("Clean() error: %v", err)
	}
	if got != "mi~~g" {
		t.Errorf("Clean() = %q, want %q", got, "mi~~g")
	}
}

func TestCleanWithStats(t *testing.T) {
	c := New(nil)
	result := c.CleanWithStats(`<l>a <hi>b</hi> <note>c</note> &amp; <gap extent="3 letter"/></l>`)
	if result.Err != nil {
		t.Fatalf("CleanWithStats() error: %v", result.Err)
	}
	stats := result.Stats
	if stats.EntitiesReplaced != 1 {
		t.Errorf("EntitiesReplaced = %d, want 1", stats.EntitiesReplaced)
	}
	if stats.ElementsDeleted["note"] != 1 {
		t.Errorf("ElementsDeleted[note] = %d, want 1", stats.ElementsDeleted["note"])
	}
	if stats.TagsStripped["hi"] != 1 {
		t.Errorf("TagsStripped[hi] = %d, want 1", stats.TagsStripped["hi"])
	}
	if stats.GapsFilled != 1 {
		t.Errorf("GapsFilled = %d, want 1", stats.GapsFilled)
	}
	if stats.PlaceholdersInserted != 3 {
		t.Errorf("PlaceholdersInserted = %d, want 3", stats.PlaceholdersInserted)
	}
	if stats.InputBytes == 0 || stats.OutputBytes == 0 {
		t.Error("expected byte counts to be recorded")
	}
	if c.Stats() != stats {
		t.Error("Stats() should return the last run's stats")
	}
}

func TestGapExtent(t *testing.T) {
	tests := []struct {
		extent string
		want   int
	}{
		{"3 letter", 3},
		{"1 letter", 1},
		{"2 line", 0},
		{"1 page", 0},
		{"", 0},
		{"letter", 0},
		{"x letter", 0},
		{"-1 letter", 0},
	}
	for _, tt := range tests {
		if got := gapExtent(tt.extent); got != tt.want {
			t.Errorf("gapExtent(%q) = %d, want %d", tt.extent, got, tt.want)
		}
	}
}
