// Package report renders the human readable citation check report.
package report

import (
	"fmt"
	"io"

	"github.com/btraven00/apacheck/internal/apa"
)

// Writer prints scan diagnostics and matching results. It implements
// apa.Reporter so the scanner can emit diagnostics inline. The first write
// error is kept and returned by Err; later writes are skipped.
type Writer struct {
	w   io.Writer
	err error
}

var _ apa.Reporter = (*Writer)(nil)

// NewWriter returns a report writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}

	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// UnrecognizedCitation reports a body line with a year but no citation.
func (w *Writer) UnrecognizedCitation(line string) {
	w.printf("UNRECOGNIZED POTENTIAL CITATION IN THIS PARAGRAPH:\n%s\n", line)
}

// ReferenceLocated echoes a recognized reference entry.
func (w *Writer) ReferenceLocated(m apa.Match) {
	w.printf("LOCATED REFERENCE ITEM: %s %q\n", m.Record, m.Title)
}

// UnrecognizedReference reports a reference-list line no pattern matched.
func (w *Writer) UnrecognizedReference(line string) {
	w.printf("UNRECOGNIZED REFERENCE ITEM:\n%s\n", line)
}

// Result prints the per-record outcomes of both passes and the summary.
func (w *Writer) Result(res apa.MatchResult) error {
	for _, out := range res.Citations {
		if out.Found {
			w.printf("OK: Citation %s FOUND in references!\n", out.Record)
		} else {
			w.printf("PROBLEM: No reference information for citation %s\n", out.Record)
		}
	}

	for _, out := range res.References {
		if out.Found {
			w.printf("OK: Reference item %s CITED in manuscript!\n", out.Record)
		} else {
			w.printf("PROBLEM: No citation for reference %s\n", out.Record)
		}
	}

	w.printf("\n%s\n%s\n", Summary("CITATIONS", res.CitationTally), Summary("REFERENCES", res.ReferenceTally))

	return w.err
}

// Summary formats one tally line, e.g. "CITATIONS: 3 OK, 1 FAIL; 75% SUCCESS".
func Summary(label string, t apa.Tally) string {
	return fmt.Sprintf("%s: %d OK, %d FAIL; %d%% SUCCESS", label, t.OK, t.Fail, t.Percent())
}
