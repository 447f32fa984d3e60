package markup

import (
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
)

// Cleaner turns one raw TEI-XML fragment (a single <l> or <p> subtree)
// into markup-free text. It implements the cleaner.Cleaner interface.
//
// The passes run in a fixed order; each pass establishes preconditions the
// next one relies on:
//
//  1. literal entity/glyph substitution (before parsing, since the TCP
//     character references are not resolvable by an XML parser)
//  2. textual stripping of pass-through tags (some are not valid
//     standalone markup until boundary tags are resolved)
//  3. strict structural parse
//  4. recursive deletion of delete-policy subtrees
//  5. render back to text with whitespace normalization, resolving gap
//     elements into placeholder runs and dropping unexpanded abbreviation
//     glyph references as they are encountered
//  6. textual stripping of the structural wrapper tags kept through 3-5
//  7. residual-markup postcondition check
type Cleaner struct {
	config *Config
	stats  *Stats
}

// New creates a Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	config.compile()
	return &Cleaner{config: config}
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "markup"
}

// Clean transforms one fragment into markup-free text. On error the
// fragment is unusable; there is no partial output.
func (c *Cleaner) Clean(fragment string) (string, error) {
	result := c.CleanWithStats(fragment)
	if result.Err != nil {
		return "", result.Err
	}
	return result.Content, nil
}

// Stats returns the stats from the last Clean operation.
func (c *Cleaner) Stats() *Stats {
	return c.stats
}

// CleanWithStats performs cleaning and returns detailed stats.
func (c *Cleaner) CleanWithStats(fragment string) *Result {
	startTime := time.Now()
	stats := NewStats()
	stats.InputBytes = len(fragment)
	c.stats = stats

	fail := func(err error) *Result {
		stats.TotalDuration = time.Since(startTime)
		return &Result{Stats: stats, Err: err}
	}

	text := c.substituteEntities(fragment, stats)
	text = c.stripTags(text, c.config.PassThroughTags, stats)

	parseStart := time.Now()
	root, err := c.parse(text)
	stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		return fail(err)
	}

	c.deleteSubtrees(root, stats)

	var sb strings.Builder
	if err := c.render(root, &sb, stats, fragment); err != nil {
		return fail(err)
	}
	text = sb.String()
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\t", " ")

	// The render walk resolves every gap element it sees, so a surviving
	// gap opener means parsing and rendering disagree about the tree.
	if strings.Contains(text, "<"+c.config.GapTag) {
		return fail(&UnresolvedGapError{Text: text})
	}

	text = c.stripTags(text, c.config.StructuralTags, stats)

	if strings.ContainsAny(text, "<>") {
		return fail(&ResidualMarkupError{Text: text})
	}

	stats.OutputBytes = len(text)
	stats.TotalDuration = time.Since(startTime)
	return &Result{Content: text, Stats: stats}
}

// substituteEntities applies the ordered literal replacement rules.
func (c *Cleaner) substituteEntities(text string, stats *Stats) string {
	for _, rule := range c.config.Entities {
		if n := strings.Count(text, rule.From); n > 0 {
			stats.EntitiesReplaced += n
			text = strings.ReplaceAll(text, rule.From, rule.To)
		}
	}
	return text
}

// stripTags removes the opening and closing markers for each tag name,
// leaving inner text and nested tags in place. An opener only matches when
// the character after the tag name is a space, '>', or '/', so a short tag
// name never matches as a prefix of a longer one.
func (c *Cleaner) stripTags(text string, tags []string, stats *Stats) string {
	for _, tag := range tags {
		opener := "<" + tag
		for {
			idx := findTagOpener(text, opener)
			if idx < 0 {
				break
			}
			// Assume the tag is eventually closed; the postcondition
			// check catches anything this leaves behind.
			end := strings.IndexByte(text[idx:], '>')
			if end < 0 {
				break
			}
			text = text[:idx] + text[idx+end+1:]
			stats.TagsStripped[tag]++
		}
		closer := "</" + tag + ">"
		if n := strings.Count(text, closer); n > 0 {
			text = strings.ReplaceAll(text, closer, "")
		}
	}
	return text
}

// findTagOpener locates an opener occurrence followed by a boundary
// character, or -1 when none remains.
func findTagOpener(text, opener string) int {
	from := 0
	for {
		idx := strings.Index(text[from:], opener)
		if idx < 0 {
			return -1
		}
		idx += from
		rest := text[idx+len(opener):]
		if rest != "" && (rest[0] == ' ' || rest[0] == '>' || rest[0] == '/') {
			return idx
		}
		from = idx + 1
	}
}

// parse runs the strict structural parse and returns the fragment's root
// element.
func (c *Cleaner) parse(text string) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, &MalformedMarkupError{Fragment: text, Err: err}
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n, nil
		}
	}
	return nil, &MalformedMarkupError{Fragment: text, Err: errNoRootElement}
}

// deleteSubtrees removes delete-policy elements at any nesting depth.
func (c *Cleaner) deleteSubtrees(n *xmlquery.Node, stats *Stats) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == xmlquery.ElementNode {
			if _, ok := c.config.deleteSet[child.Data]; ok {
				xmlquery.RemoveFromTree(child)
				stats.ElementsDeleted[child.Data]++
			} else {
				c.deleteSubtrees(child, stats)
			}
		}
		child = next
	}
}

// render serializes the tree back to text. Structural elements are
// re-emitted as tags (they are resolved by the final textual pass); gap
// elements are replaced in place by their placeholder run; abbreviation
// glyph references are dropped without expansion; any other element is a
// configuration gap.
func (c *Cleaner) render(n *xmlquery.Node, sb *strings.Builder, stats *Stats, fragment string) error {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		sb.WriteString(escapeText(n.Data))
		return nil
	case xmlquery.ElementNode:
		// handled below
	default:
		return nil
	}

	name := n.Data
	switch {
	case name == c.config.GapTag:
		stats.GapsFilled++
		count := gapExtent(n.SelectAttr("extent"))
		stats.PlaceholdersInserted += count
		sb.WriteString(strings.Repeat(c.config.Placeholder, count))
		return nil
	case name == c.config.GlyphTag && strings.HasPrefix(n.SelectAttr("ref"), c.config.AbbrevRefPrefix):
		// Abbreviation expansion is not attempted; the whole element,
		// self-closing or not, is dropped.
		stats.AbbrevRefsStripped++
		return nil
	case c.config.Structural(name) || name == c.config.GlyphTag:
		writeTag(sb, n)
	default:
		if _, ok := c.config.passSet[name]; !ok {
			return &UnknownTagError{Tag: name, Fragment: fragment}
		}
		// A pass-through tag that survived the textual pass (for
		// example with an unusual opener layout) still keeps only its
		// inner text.
		stats.TagsStripped[name]++
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := c.render(child, sb, stats, fragment); err != nil {
			return err
		}
	}
	if c.config.Structural(name) || name == c.config.GlyphTag {
		sb.WriteString("</" + name + ">")
	}
	return nil
}

// gapExtent computes the placeholder count from an extent attribute of the
// form "<count> <unit>". Only "letter" units produce placeholders; other
// units (missing lines, pages) contribute nothing, a known lossy policy.
func gapExtent(extent string) int {
	fields := strings.Fields(extent)
	if len(fields) < 2 || fields[1] != "letter" {
		return 0
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return 0
	}
	return count
}

func writeTag(sb *strings.Builder, n *xmlquery.Node) {
	sb.WriteString("<" + n.Data)
	for _, attr := range n.Attr {
		sb.WriteString(" " + attr.Name.Local + `="` + attr.Value + `"`)
	}
	sb.WriteString(">")
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
