package report

import (
	"fmt"
	"io"
)

// DocumentSink renders an ordered statement into a downloadable artifact.
// Implementations decide the output format; the engine only supplies the
// title and lines.
type DocumentSink interface {
	// Render writes the document for the given title and lines.
	Render(w io.Writer, title string, lines []Line) error

	// ContentType is the MIME type of the rendered artifact.
	ContentType() string

	// Filename suggests a download filename for the artifact.
	Filename() string
}

// TextSink renders the statement as plain text, one block per line item.
type TextSink struct{}

var _ DocumentSink = TextSink{}

// Render writes the statement as plain text.
func (TextSink) Render(w io.Writer, title string, lines []Line) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	for _, line := range lines {
		_, err := fmt.Fprintf(w, "Expense: %s\nAmount: %s\nPaid by: %s\n\n",
			line.Description, line.Owed, line.PayerName)
		if err != nil {
			return fmt.Errorf("failed to write statement line: %w", err)
		}
	}
	return nil
}

// ContentType returns the plain-text MIME type.
func (TextSink) ContentType() string { return "text/plain; charset=utf-8" }

// Filename returns the suggested download filename.
func (TextSink) Filename() string { return "balance-sheet.txt" }
