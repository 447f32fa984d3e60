// Package markup provides a configurable cleaner for TEI-XML speech
// fragments. It strips markup according to per-tag policies and guarantees
// that successful output contains no residual markup syntax.
package markup

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Policy describes what the cleaner does with a tag.
type Policy int

const (
	// PolicyDelete removes the tag and everything inside it.
	PolicyDelete Policy = iota
	// PolicyPassThrough removes the tag markers but keeps the inner text.
	PolicyPassThrough
	// PolicyGap replaces the tag with a run of placeholder characters
	// derived from its extent attribute.
	PolicyGap
)

func (p Policy) String() string {
	switch p {
	case PolicyDelete:
		return "delete"
	case PolicyPassThrough:
		return "pass-through"
	case PolicyGap:
		return "gap"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// EntityRule is a literal textual substitution applied before parsing.
// These cover TCP character references that a generic XML parser cannot
// resolve, so they must be replaced as strings. Order matters: rules whose
// patterns share a prefix must be listed longest first.
type EntityRule struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to"`
}

// Config defines the tag policy tables and substitution rules for the
// markup cleaner. Historical corpora introduce new tag vocabularies over
// time, so the tables are data, not code.
type Config struct {
	// DeleteTags are removed together with their contents at any nesting
	// depth (editorial notes, page breaks, stage directions, asides).
	DeleteTags []string `yaml:"delete_tags"`

	// PassThroughTags are stripped textually, leaving inner text in place.
	PassThroughTags []string `yaml:"pass_through_tags"`

	// StructuralTags are the line/paragraph wrappers. They are kept through
	// the tree passes so the fragment stays parseable, and stripped last.
	StructuralTags []string `yaml:"structural_tags" validate:"required,min=1"`

	// GapTag marks illegible or missing source text. It is resolved into
	// placeholder characters rather than classified in a set, because its
	// behavior depends on its attributes.
	GapTag string `yaml:"gap_tag" validate:"required"`

	// Placeholder is inserted once per missing letter when a gap with a
	// "letter" extent is resolved. It must be a single character that
	// cannot occur in natural source text.
	Placeholder string `yaml:"placeholder" validate:"required,len=1"`

	// GlyphTag is the character-reference element ("g"). Known glyphs are
	// handled by Entities; leftover glyph references whose ref attribute
	// starts with AbbrevRefPrefix are stripped without expansion.
	GlyphTag string `yaml:"glyph_tag" validate:"required"`

	// AbbrevRefPrefix identifies abbreviation glyph references. Expansion
	// is not attempted; the references are dropped.
	AbbrevRefPrefix string `yaml:"abbrev_ref_prefix" validate:"required"`

	// Entities are applied in order as literal string replacements before
	// any structural parsing.
	Entities []EntityRule `yaml:"entities" validate:"dive"`

	deleteSet map[string]struct{}
	passSet   map[string]struct{}
	structSet map[string]struct{}
	compiled  bool
}

// DefaultConfig returns the tag tables and entity substitutions used for
// the EEBO-TCP drama corpus.
func DefaultConfig() *Config {
	cfg := &Config{
		DeleteTags: []string{
			"note",
			"pb",
			"stage",
			"bibl",
			"floatingText",
		},
		PassThroughTags: []string{
			"hi",
			"seg",
			"expan",
			"am",
			"ex",
			"list",
			"item",
			"q",
			"lg",
			"cell", // dramatis personae tables carry one name per cell
			"abbr", // ignores that the wrapped word is an abbreviation
			"milestone",
			"choice",
			"unclear",
			"head",
			"ref",
			"lb",
			"fw",
			"add",
		},
		StructuralTags:  []string{"l", "p"},
		GapTag:          "gap",
		Placeholder:     "^",
		GlyphTag:        "g",
		AbbrevRefPrefix: "char:ab",
		Entities: []EntityRule{
			{From: `<g ref="char:cmbAbbrStroke">` + "̄" + `</g>`, To: "m"},
			{From: `<g ref="char:EOLhyphen"/>`, To: ""},
			{From: `<g ref="char:EOLhyphen" />`, To: ""},
			{From: `<g ref="char:EOLunhyphen"/>`, To: ""},
			{From: `<g ref="char:EOLunhyphen" />`, To: ""},
			{From: `<g ref="char:abque"/>`, To: ""},
			{From: `<g ref="char:abque" />`, To: ""},
			{From: `<g ref="char:punc">▪</g>`, To: ""},
			{From: `<g ref="char:leaf">❧</g>`, To: ""},
			{From: `<g ref="char:V">Ʋ</g>`, To: "V"},
			{From: `<figure />`, To: ""},
			{From: `<figure/>`, To: ""},
			// &amp;c must be replaced before the bare &amp;.
			{From: `&amp;c`, To: "etc"},
			{From: `&amp;`, To: "and"},
		},
	}
	cfg.compile()
	return cfg
}

// LoadConfig reads a Config from a YAML file and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cleaner config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing cleaner config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cleaner config %s: %w", path, err)
	}
	cfg.compile()
	return &cfg, nil
}

// Validate checks the config for structural errors: missing required
// fields, and tags assigned to more than one policy table.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	seen := map[string]string{}
	note := func(tag, table string) error {
		if prev, ok := seen[tag]; ok {
			return fmt.Errorf("tag %q appears in both %s and %s tables", tag, prev, table)
		}
		seen[tag] = table
		return nil
	}
	for _, t := range c.DeleteTags {
		if err := note(t, "delete"); err != nil {
			return err
		}
	}
	for _, t := range c.PassThroughTags {
		if err := note(t, "pass-through"); err != nil {
			return err
		}
	}
	for _, t := range c.StructuralTags {
		if err := note(t, "structural"); err != nil {
			return err
		}
	}
	if err := note(c.GapTag, "gap"); err != nil {
		return err
	}
	return nil
}

func (c *Config) compile() {
	c.deleteSet = make(map[string]struct{}, len(c.DeleteTags))
	for _, t := range c.DeleteTags {
		c.deleteSet[t] = struct{}{}
	}
	c.passSet = make(map[string]struct{}, len(c.PassThroughTags))
	for _, t := range c.PassThroughTags {
		c.passSet[t] = struct{}{}
	}
	c.structSet = make(map[string]struct{}, len(c.StructuralTags))
	for _, t := range c.StructuralTags {
		c.structSet[t] = struct{}{}
	}
	c.compiled = true
}

// Classify returns the policy for a tag name. The second return value is
// false when the tag has no assigned policy; callers must treat that as a
// configuration gap, never default it.
func (c *Config) Classify(tag string) (Policy, bool) {
	if !c.compiled {
		c.compile()
	}
	if tag == c.GapTag {
		return PolicyGap, true
	}
	if _, ok := c.deleteSet[tag]; ok {
		return PolicyDelete, true
	}
	if _, ok := c.passSet[tag]; ok {
		return PolicyPassThrough, true
	}
	return 0, false
}

// Structural reports whether the tag is a retained line/paragraph wrapper.
func (c *Config) Structural(tag string) bool {
	if !c.compiled {
		c.compile()
	}
	_, ok := c.structSet[tag]
	return ok
}
