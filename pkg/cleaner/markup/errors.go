package markup

import (
	"errors"
	"fmt"
)

// errNoRootElement reports a fragment with no element at its top level.
var errNoRootElement = errors.New("no root element in fragment")

// MalformedMarkupError reports a fragment that could not be parsed as a
// tree after pre-processing. The full fragment is carried for manual
// correction; the failure is deterministic, so it is never retried.
type MalformedMarkupError struct {
	Fragment string
	Err      error
}

func (e *MalformedMarkupError) Error() string {
	return fmt.Sprintf("malformed markup: %v in fragment: %s", e.Err, e.Fragment)
}

func (e *MalformedMarkupError) Unwrap() error { return e.Err }

// UnresolvedGapError reports a gap tag that is present in the rendered
// text but was not resolved during the tree walk. This indicates an
// internal inconsistency between parsing and rendering.
type UnresolvedGapError struct {
	Text string
}

func (e *UnresolvedGapError) Error() string {
	return fmt.Sprintf("gap tag present in text but not resolved in tree: %s", e.Text)
}

// UnknownTagError reports a tag with no assigned policy that is not a
// recognized structural wrapper. Unknown tags are a configuration gap and
// are never silently defaulted to a policy.
type UnknownTagError struct {
	Tag      string
	Fragment string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("tag %q has no assigned policy in fragment: %s", e.Tag, e.Fragment)
}

// ResidualMarkupError reports bracket characters that survived all
// cleaning passes. This is the cleaner's core safety contract: residual
// markup is a hard failure, never passed through, since silent corruption
// would poison all downstream analysis.
type ResidualMarkupError struct {
	Text string
}

func (e *ResidualMarkupError) Error() string {
	return fmt.Sprintf("text not fully cleaned of markup: %s", e.Text)
}
