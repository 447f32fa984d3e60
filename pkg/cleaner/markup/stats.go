package markup

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats captures metrics about what the cleaner did to one fragment.
type Stats struct {
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// ElementsDeleted counts subtrees removed per delete-policy tag.
	ElementsDeleted map[string]int `json:"elements_deleted" yaml:"elements_deleted"`

	// TagsStripped counts pass-through and structural tag markers removed.
	TagsStripped map[string]int `json:"tags_stripped" yaml:"tags_stripped"`

	EntitiesReplaced     int `json:"entities_replaced" yaml:"entities_replaced"`
	GapsFilled           int `json:"gaps_filled" yaml:"gaps_filled"`
	PlaceholdersInserted int `json:"placeholders_inserted" yaml:"placeholders_inserted"`
	AbbrevRefsStripped   int `json:"abbrev_refs_stripped" yaml:"abbrev_refs_stripped"`

	ParseDuration time.Duration `json:"parse_duration_ns" yaml:"parse_duration_ns"`
	TotalDuration time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates a Stats with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsDeleted: make(map[string]int),
		TagsStripped:    make(map[string]int),
	}
}

// TotalElementsDeleted returns the sum over all delete-policy tags.
func (s *Stats) TotalElementsDeleted() int {
	total := 0
	for _, n := range s.ElementsDeleted {
		total += n
	}
	return total
}

// Merge accumulates another fragment's stats into s.
func (s *Stats) Merge(other *Stats) {
	if other == nil {
		return
	}
	s.InputBytes += other.InputBytes
	s.OutputBytes += other.OutputBytes
	for tag, n := range other.ElementsDeleted {
		s.ElementsDeleted[tag] += n
	}
	for tag, n := range other.TagsStripped {
		s.TagsStripped[tag] += n
	}
	s.EntitiesReplaced += other.EntitiesReplaced
	s.GapsFilled += other.GapsFilled
	s.PlaceholdersInserted += other.PlaceholdersInserted
	s.AbbrevRefsStripped += other.AbbrevRefsStripped
	s.ParseDuration += other.ParseDuration
	s.TotalDuration += other.TotalDuration
}

// String returns a human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Size: %d -> %d bytes\n", s.InputBytes, s.OutputBytes)
	fmt.Fprintf(&sb, "Entities replaced: %d\n", s.EntitiesReplaced)
	fmt.Fprintf(&sb, "Elements deleted: %d\n", s.TotalElementsDeleted())
	if len(s.ElementsDeleted) > 0 {
		sb.WriteString("Deleted by tag: ")
		sb.WriteString(formatTagCounts(s.ElementsDeleted))
		sb.WriteString("\n")
	}
	if len(s.TagsStripped) > 0 {
		sb.WriteString("Stripped by tag: ")
		sb.WriteString(formatTagCounts(s.TagsStripped))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Gaps filled: %d (%d placeholders)\n", s.GapsFilled, s.PlaceholdersInserted)
	if s.AbbrevRefsStripped > 0 {
		fmt.Fprintf(&sb, "Abbreviation refs stripped: %d\n", s.AbbrevRefsStripped)
	}
	fmt.Fprintf(&sb, "Time: %s (parse %s)\n", s.TotalDuration, s.ParseDuration)
	return sb.String()
}

func formatTagCounts(counts map[string]int) string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = fmt.Sprintf("%s=%d", tag, counts[tag])
	}
	return strings.Join(parts, ", ")
}

// Result is the outcome of cleaning one fragment.
type Result struct {
	Content string
	Stats   *Stats
	Err     error
}
