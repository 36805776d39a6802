package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/btraven00/apacheck/internal/apa"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		tally    apa.Tally
		expected string
	}{
		{"all ok", apa.Tally{OK: 2}, "CITATIONS: 2 OK, 0 FAIL; 100% SUCCESS"},
		{"partial", apa.Tally{OK: 1, Fail: 2}, "CITATIONS: 1 OK, 2 FAIL; 33% SUCCESS"},
		{"nothing collected", apa.Tally{}, "CITATIONS: 0 OK, 0 FAIL; 0% SUCCESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary("CITATIONS", tt.tally); got != tt.expected {
				t.Errorf("Summary() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWriterEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	s := apa.NewScanner(apa.WithReporter(w))
	s.ScanLines([]string{
		"As shown by Smith (2020), this holds.",
		"References",
		"Smith, J. (2020). A study of things.",
	})

	if err := w.Result(apa.CrossCheck(s.Citations(), s.References())); err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	out := buf.String()
	expected := []string{
		`LOCATED REFERENCE ITEM: {"Smith"}, 2020 "A study of things."`,
		`OK: Citation {"Smith"}, 2020 FOUND in references!`,
		`OK: Reference item {"Smith"}, 2020 CITED in manuscript!`,
		"CITATIONS: 1 OK, 0 FAIL; 100% SUCCESS",
		"REFERENCES: 1 OK, 0 FAIL; 100% SUCCESS",
	}

	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "PROBLEM") || strings.Contains(out, "UNRECOGNIZED") {
		t.Errorf("Unexpected problem lines:\n%s", out)
	}
}

func TestWriterMissingReference(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	s := apa.NewScanner(apa.WithReporter(w))
	s.ScanLines([]string{"Doe and Lee (2019) disagree.", "References"})

	if err := w.Result(apa.CrossCheck(s.Citations(), s.References())); err != nil {
		t.Fatalf("Result returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `PROBLEM: No reference information for citation {"Doe", "Lee"}, 2019`) {
		t.Errorf("Expected a problem line for Doe and Lee:\n%s", out)
	}

	if !strings.Contains(out, "CITATIONS: 0 OK, 1 FAIL; 0% SUCCESS") {
		t.Errorf("Expected a failing citation summary:\n%s", out)
	}

	if !strings.Contains(out, "REFERENCES: 0 OK, 0 FAIL; 0% SUCCESS") {
		t.Errorf("Expected a guarded reference summary:\n%s", out)
	}
}

func TestWriterDiagnosticsOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	s := apa.NewScanner(apa.WithReporter(w))
	s.ScanLines([]string{
		"Data from 2015 were used.",
		"References",
		"Garbage line.",
	})

	out := buf.String()
	citation := strings.Index(out, "UNRECOGNIZED POTENTIAL CITATION IN THIS PARAGRAPH:\nData from 2015 were used.")
	reference := strings.Index(out, "UNRECOGNIZED REFERENCE ITEM:\nGarbage line.")

	if citation < 0 || reference < 0 || citation > reference {
		t.Errorf("Diagnostics missing or out of order:\n%s", out)
	}
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestWriterKeepsFirstError(t *testing.T) {
	fw := &failingWriter{}
	w := NewWriter(fw)

	w.UnrecognizedCitation("one")
	w.UnrecognizedReference("two")

	if err := w.Result(apa.MatchResult{}); err == nil || err.Error() != "disk full" {
		t.Errorf("Expected disk full error, got %v", err)
	}

	if fw.calls != 1 {
		t.Errorf("Expected writes to stop after the first error, got %d calls", fw.calls)
	}
}
