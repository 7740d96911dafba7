package verify

import (
	"fmt"
	"io"

	"github.com/resolang/reso/board"
)

// A Report bundles a board's summary with its lint findings.
type Report struct {
	Stats  board.Stats
	Issues []Issue
}

// Clean reports whether lint found nothing.
func (r *Report) Clean() bool {
	return len(r.Issues) == 0
}

// GenerateReport lints a compiled board and collects its statistics.
func GenerateReport(b *board.Board) *Report {
	return &Report{
		Stats:  b.Stats(),
		Issues: RunLint(b),
	}
}

// Write renders the report as plain text.
func (r *Report) Write(w io.Writer) error {
	s := r.Stats
	_, err := fmt.Fprintf(w,
		"board %dx%d: %d regions (%d wires, %d inputs, %d outputs, %d xors, %d ands)\n",
		s.Width, s.Height, s.Regions, s.Wires, s.Inputs, s.Outputs, s.Xors, s.Ands)
	if err != nil {
		return err
	}

	if r.Clean() {
		_, err = fmt.Fprintln(w, "no issues found")
		return err
	}

	if _, err = fmt.Fprintf(w, "%d issue(s):\n", len(r.Issues)); err != nil {
		return err
	}
	for _, issue := range r.Issues {
		if _, err = fmt.Fprintf(w, "  [%s] %s\n", issue.Kind.Name(), issue.Message); err != nil {
			return err
		}
	}
	return nil
}
