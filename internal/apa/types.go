// Package apa extracts author/year citations and reference-list entries from
// an APA style manuscript and cross-checks them against each other.
package apa

import (
	"fmt"
	"strings"
)

// EtAl is the pseudo-name kept in records produced from "et al." citations.
// It never has to be present on the other side of a match.
const EtAl = "et al."

// Mode is the state of the line scanner.
type Mode int

const (
	// ModeCollecting is the initial mode: lines are body text.
	ModeCollecting Mode = iota
	// ModeChecking is entered after the reference list heading.
	ModeChecking
)

func (m Mode) String() string {
	switch m {
	case ModeCollecting:
		return "collecting"
	case ModeChecking:
		return "checking"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Form tells the normalizer which name flavor a pattern captures.
type Form int

const (
	// FormShort is the in-text form: surnames only.
	FormShort Form = iota
	// FormFull is the reference-list form: surname followed by initials.
	FormFull
)

// Shape identifies a recognized citation or reference layout.
type Shape string

const (
	ShapeManyAndParen Shape = "many_and_paren"
	ShapeTwoAndParen  Shape = "two_and_paren"
	ShapeSingleParen  Shape = "single_paren"
	ShapeEtAlParen    Shape = "et_al_paren"
	ShapeManyAmpComma Shape = "many_amp_comma"
	ShapeManyAndComma Shape = "many_and_comma"
	ShapeTwoAndComma  Shape = "two_and_comma"
	ShapeTwoAmpComma  Shape = "two_amp_comma"
	ShapeSingleComma  Shape = "single_comma"
	ShapeEtAlComma    Shape = "et_al_comma"
	ShapeRefManyAmp   Shape = "ref_many_amp"
	ShapeRefManyAnd   Shape = "ref_many_and"
	ShapeRefTwoAmp    Shape = "ref_two_amp"
	ShapeRefTwoAnd    Shape = "ref_two_and"
	ShapeRefSingle    Shape = "ref_single"
)

// Record is the canonical form of a citation or reference entry.
// Names is a set; the slice keeps first-seen order for printing only.
type Record struct {
	Year  string
	Names []string
}

// Has reports whether name is one of the record's names.
func (r Record) Has(name string) bool {
	for _, n := range r.Names {
		if n == name {
			return true
		}
	}

	return false
}

// Equal reports whether both records have the same year and the same name set.
func (r Record) Equal(other Record) bool {
	if r.Year != other.Year || len(r.Names) != len(other.Names) {
		return false
	}

	for _, n := range r.Names {
		if !other.Has(n) {
			return false
		}
	}

	return true
}

// String renders the record as {"Smith", "Jones"}, 2020.
func (r Record) String() string {
	quoted := make([]string, len(r.Names))
	for i, n := range r.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	return fmt.Sprintf("{%s}, %s", strings.Join(quoted, ", "), r.Year)
}

// Match is one pattern hit on a line.
type Match struct {
	Pattern *Pattern
	// Groups holds the raw name-list groups followed by the year.
	Groups []string
	// Title is only set for reference-list matches.
	Title   string
	Record  Record
	YearEnd int
}
