// Package cleaner provides interfaces and implementations for cleaning
// extracted speech text. Cleaners transform raw TEI-XML fragments into
// plain ASCII suitable for stylometric analysis.
package cleaner

// Cleaner transforms one text field of a speech row.
// Implementations are stateless with respect to their input: each call
// produces a new string, and fields are independent of one another.
type Cleaner interface {
	// Clean transforms the input text. An error means the field cannot
	// be processed and the pipeline run must stop; cleaners never return
	// partially cleaned output.
	Clean(text string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
