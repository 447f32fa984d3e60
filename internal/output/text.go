package output

import (
	"bufio"
	"fmt"
	"io"
)

// TextWriter writes reports as human-readable text. Reports
// implementing fmt.Stringer control their own rendering.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a text report writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write renders a single report.
func (w *TextWriter) Write(data any) error {
	var rendered string
	switch v := data.(type) {
	case fmt.Stringer:
		rendered = v.String()
	case string:
		rendered = v
	default:
		rendered = fmt.Sprintf("%+v", v)
	}
	if _, err := w.w.WriteString(rendered); err != nil {
		return err
	}
	if len(rendered) == 0 || rendered[len(rendered)-1] != '\n' {
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
