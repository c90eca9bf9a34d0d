package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/apidoc/internal/extract"
)

// Columns is the fixed output schema.
var Columns = []string{"repo", "file", "method", "path", "documentation", "notes"}

// CSVWriter renders records as CSV.
//
// Every field is quoted. The extracted fields (method, path, documentation,
// notes) come from the normalizer with quotes already doubled, so they are
// wrapped as is. repo and file are taken from file names and get their
// quotes doubled here.
type CSVWriter struct {
	w *bufio.Writer
}

// NewCSVWriter creates a CSV writer on top of w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header row.
func (c *CSVWriter) WriteHeader() error {
	_, err := c.w.WriteString(strings.Join(Columns, ",") + "\n")
	return err
}

// Write writes one data row.
func (c *CSVWriter) Write(r *extract.Record) error {
	fields := []string{
		quoted(escapeQuotes(r.Repo)),
		quoted(escapeQuotes(r.File)),
		quoted(r.Method()),
		quoted(r.FullPath()),
		quoted(r.Documentation()),
		quoted(r.Notes()),
	}
	_, err := c.w.WriteString(strings.Join(fields, ",") + "\n")
	return err
}

// Flush writes any buffered data to the underlying writer.
func (c *CSVWriter) Flush() error {
	return c.w.Flush()
}

// WriteCSV writes the header and every record, then flushes.
func WriteCSV(w io.Writer, records []*extract.Record) error {
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", r.File, err)
		}
	}
	if err := cw.Flush(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}
	return nil
}

func quoted(escaped string) string {
	return `"` + escaped + `"`
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
