package apa

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// Reporter receives the advisory diagnostics produced while scanning.
type Reporter interface {
	UnrecognizedCitation(line string)
	ReferenceLocated(m Match)
	UnrecognizedReference(line string)
}

type nopReporter struct{}

func (nopReporter) UnrecognizedCitation(string)  {}
func (nopReporter) ReferenceLocated(Match)       {}
func (nopReporter) UnrecognizedReference(string) {}

// Scanner walks a manuscript line by line, collecting in-text citations
// until the reference list heading and reference entries after it.
// A Scanner is single-use and not safe for concurrent use.
type Scanner struct {
	reporter   Reporter
	logger     *zap.Logger
	clean      func(string) string
	citations  []Record
	references []Record
	mode       Mode
	lineNo     int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithReporter sets where diagnostics go. The default discards them.
func WithReporter(r Reporter) Option {
	return func(s *Scanner) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithLogger sets the debug logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCleaner sets the function that normalizes each raw line before it is
// matched. Diagnostics still echo the raw line. The default keeps lines as is.
func WithCleaner(clean func(string) string) Option {
	return func(s *Scanner) {
		if clean != nil {
			s.clean = clean
		}
	}
}

// NewScanner returns a scanner in collecting mode.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		reporter: nopReporter{},
		logger:   zap.NewNop(),
		clean:    func(line string) string { return line },
		mode:     ModeCollecting,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ScanLines feeds the given lines to the scanner in order.
func (s *Scanner) ScanLines(lines []string) {
	for _, line := range lines {
		s.ScanLine(line)
	}
}

// ScanLine processes one raw line in the current mode.
func (s *Scanner) ScanLine(raw string) {
	s.lineNo++

	line := s.clean(raw)
	if IsHeading(line) {
		if s.mode == ModeCollecting {
			s.logger.Debug("reference list heading found", zap.Int("line", s.lineNo))
		}

		s.mode = ModeChecking

		return
	}

	switch s.mode {
	case ModeCollecting:
		s.collectCitations(line, raw)
	case ModeChecking:
		if utf8.RuneCountInString(line) < 2 {
			return
		}

		s.collectReferences(line, raw)
	}
}

// Mode returns the current scanning mode.
func (s *Scanner) Mode() Mode {
	return s.mode
}

// Citations returns a copy of the records collected from body text.
func (s *Scanner) Citations() []Record {
	return copyRecords(s.citations)
}

// References returns a copy of the records collected from the reference list.
func (s *Scanner) References() []Record {
	return copyRecords(s.references)
}

func copyRecords(records []Record) []Record {
	if records == nil {
		return nil
	}

	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = Record{Year: r.Year, Names: append([]string(nil), r.Names...)}
	}

	return out
}

func (s *Scanner) collectCitations(line, raw string) {
	matches := findCitations(line, func(dup Match) {
		s.logger.Debug("match collides with previous",
			zap.Int("line", s.lineNo),
			zap.String("shape", string(dup.Pattern.Shape)),
			zap.Strings("groups", dup.Groups))
	})

	for _, m := range matches {
		s.logger.Debug("citation",
			zap.Int("line", s.lineNo),
			zap.String("shape", string(m.Pattern.Shape)),
			zap.Stringer("record", m.Record))
		s.citations = append(s.citations, m.Record)
	}

	if len(matches) == 0 && LooksLikeCitation(line) {
		s.reporter.UnrecognizedCitation(raw)
	}
}

func (s *Scanner) collectReferences(line, raw string) {
	matches := findReferences(line, func(dup Match) {
		s.logger.Debug("reference shape collides with previous",
			zap.Int("line", s.lineNo),
			zap.String("shape", string(dup.Pattern.Shape)),
			zap.Strings("groups", dup.Groups))
	})

	for _, m := range matches {
		s.reporter.ReferenceLocated(m)
		s.references = append(s.references, m.Record)
	}

	if len(matches) == 0 {
		s.reporter.UnrecognizedReference(raw)
	}
}

// FindCitations applies the whole in-text library to line. A match whose
// year ends at an offset already claimed by an earlier pattern is dropped.
func FindCitations(line string) []Match {
	return findCitations(line, nil)
}

// FindReferences applies the reference library anchored at the start of
// line, with the same year-offset deduplication as FindCitations.
func FindReferences(line string) []Match {
	return findReferences(line, nil)
}

func findCitations(line string, onDup func(Match)) []Match {
	claimed := make(map[int]bool)

	var found []Match

	for i := range citationLibrary {
		for _, m := range citationLibrary[i].findAll(line) {
			if claimed[m.YearEnd] {
				if onDup != nil {
					onDup(m)
				}

				continue
			}

			claimed[m.YearEnd] = true
			found = append(found, m)
		}
	}

	return found
}

func findReferences(line string, onDup func(Match)) []Match {
	claimed := make(map[int]bool)

	var found []Match

	for i := range referenceLibrary {
		m, ok := referenceLibrary[i].matchStart(line)
		if !ok {
			continue
		}

		if claimed[m.YearEnd] {
			if onDup != nil {
				onDup(m)
			}

			continue
		}

		claimed[m.YearEnd] = true
		found = append(found, m)
	}

	return found
}
