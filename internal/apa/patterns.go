package apa

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern describes one recognized citation or reference layout.
//
// Groups 1..YearGroup-1 capture name lists, YearGroup captures the year and,
// for reference patterns, YearGroup+1 captures the title.
type Pattern struct {
	Regex       *regexp.Regexp
	Name        string
	Shape       Shape
	Description string
	Examples    []string
	Form        Form
	YearGroup   int
}

// Name fragments shared by every pattern. A bare surname may carry the
// particles "de la" or "De" and a trailing "Inc.".
const (
	nameChars = `\wäöåüëïéèêáàâíìîóòôúùûñçø`
	shortName = `(?:de la )?(?:De )?[A-Z][` + nameChars + `]+(?: Inc\.)?`
	initials  = `(?: [\w\p{Lu}]\.?(?:-[\w\p{Lu}])?\.)+`
	fullName  = shortName + `,` + initials
	year      = `([0-9]{4})`
)

var (
	citationLibrary  = getCitationPatterns()
	referenceLibrary = getReferencePatterns()

	headingRegex     = regexp.MustCompile(`^(?:References|REFERENCES|Bibliography)$`)
	suspectYearRegex = regexp.MustCompile(`\b[12][0-9]{3}[a-z]?\b`)
	initialsRegex    = regexp.MustCompile(`^(?:[\w\p{Lu}]\.?(?:-[\w\p{Lu}])?\.\s*)+$`)
)

// CitationPatterns returns the in-text pattern library, most specific first.
func CitationPatterns() []Pattern {
	return citationLibrary
}

// ReferencePatterns returns the reference-list pattern library, most specific first.
func ReferencePatterns() []Pattern {
	return referenceLibrary
}

func getCitationPatterns() []Pattern {
	return []Pattern{
		// Narrative citations: names in running text, year in parentheses
		{
			Name:        "Many authors with and",
			Shape:       ShapeManyAndParen,
			Regex:       compile(`((?:%s, ){2,6})and (%s) \(%s\)`, shortName, shortName, year),
			YearGroup:   3,
			Description: "Three to seven authors, serial comma and a final \"and\"",
			Examples:    []string{"Smith, Jones, and Lee (2020)"},
		},
		{
			Name:        "Two authors with and",
			Shape:       ShapeTwoAndParen,
			Regex:       compile(`(%s) and (%s) \(%s\)`, shortName, shortName, year),
			YearGroup:   3,
			Description: "Two authors joined by \"and\"",
			Examples:    []string{"Smith and Jones (2020)"},
		},
		{
			Name:        "Single author",
			Shape:       ShapeSingleParen,
			Regex:       compile(`(?:(%s) )+\(%s\)`, shortName, year),
			YearGroup:   2,
			Description: "One author directly before the year",
			Examples:    []string{"Smith (2020)", "de la Cruz (1999)"},
		},
		{
			Name:        "Et al.",
			Shape:       ShapeEtAlParen,
			Regex:       compile(`(%s) (et al\.) \(%s\)`, shortName, year),
			YearGroup:   3,
			Description: "First author followed by \"et al.\"",
			Examples:    []string{"Smith et al. (2020)"},
		},

		// Parenthetical citations: names and year separated by a comma
		{
			Name:        "Many authors with ampersand",
			Shape:       ShapeManyAmpComma,
			Regex:       compile(`((?:%s, ){2,5})& (%s), %s`, shortName, shortName, year),
			YearGroup:   3,
			Description: "Three to six authors, serial comma and a final \"&\"",
			Examples:    []string{"(Smith, Jones, & Lee, 2020)"},
		},
		{
			Name:        "Many authors with and, comma year",
			Shape:       ShapeManyAndComma,
			Regex:       compile(`((?:%s, ){2,5})and (%s), %s`, shortName, shortName, year),
			YearGroup:   3,
			Description: "Three to six authors, serial comma and a final \"and\"",
			Examples:    []string{"(Smith, Jones, and Lee, 2020)"},
		},
		{
			Name:        "Two authors with and, comma year",
			Shape:       ShapeTwoAndComma,
			Regex:       compile(`(%s) and (%s), %s`, shortName, shortName, year),
			YearGroup:   3,
			Description: "Two authors joined by \"and\"",
			Examples:    []string{"(Smith and Jones, 2020)"},
		},
		{
			Name:        "Two authors with ampersand",
			Shape:       ShapeTwoAmpComma,
			Regex:       compile(`(%s) & (%s), %s`, shortName, shortName, year),
			YearGroup:   3,
			Description: "Two authors joined by \"&\"",
			Examples:    []string{"(Smith & Jones, 2020)"},
		},
		{
			Name:        "Single author, comma year",
			Shape:       ShapeSingleComma,
			Regex:       compile(`(%s), %s`, shortName, year),
			YearGroup:   2,
			Description: "One author followed by a comma and the year",
			Examples:    []string{"(Smith, 2020)"},
		},
		{
			Name:        "Et al., comma year",
			Shape:       ShapeEtAlComma,
			Regex:       compile(`(%s) (et al\.), %s`, shortName, year),
			YearGroup:   3,
			Description: "First author, \"et al.\", comma and the year",
			Examples:    []string{"(Smith et al., 2020)"},
		},
	}
}

func getReferencePatterns() []Pattern {
	const tail = ` \(%s\)\. (.*\.)`

	return []Pattern{
		{
			Name:        "Many authors with ampersand",
			Shape:       ShapeRefManyAmp,
			Form:        FormFull,
			Regex:       compile(`^((?:%s, ){2,5})& (%s)`+tail, fullName, fullName, year),
			YearGroup:   3,
			Description: "Three to six authors with initials and a final \"&\"",
			Examples:    []string{"Smith, J., Jones, K., & Lee, M. (2020). Title."},
		},
		{
			Name:        "Many authors with and",
			Shape:       ShapeRefManyAnd,
			Form:        FormFull,
			Regex:       compile(`^((?:%s, ){2,5})and (%s)`+tail, fullName, fullName, year),
			YearGroup:   3,
			Description: "Three to six authors with initials and a final \"and\"",
			Examples:    []string{"Smith, J., Jones, K., and Lee, M. (2020). Title."},
		},
		{
			Name:        "Two authors with ampersand",
			Shape:       ShapeRefTwoAmp,
			Form:        FormFull,
			Regex:       compile(`^(%s),? & (%s)`+tail, fullName, fullName, year),
			YearGroup:   3,
			Description: "Two authors with initials joined by \"&\", optional comma before it",
			Examples:    []string{"Smith, J., & Jones, K.-L. (2020). Title.", "Smith, J. & Jones, K. (2020). Title."},
		},
		{
			Name:        "Two authors with and",
			Shape:       ShapeRefTwoAnd,
			Form:        FormFull,
			Regex:       compile(`^(%s),? and (%s)`+tail, fullName, fullName, year),
			YearGroup:   3,
			Description: "Two authors with initials joined by \"and\"",
			Examples:    []string{"Smith, J. and Jones, K. (2020). Title."},
		},
		{
			Name:        "Single author",
			Shape:       ShapeRefSingle,
			Form:        FormFull,
			Regex:       compile(`^(%s)`+tail, fullName, year),
			YearGroup:   2,
			Description: "One author with initials",
			Examples:    []string{"Smith, J. P. (2020). Title."},
		},
	}
}

func compile(format string, args ...any) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(format, args...))
}

// IsHeading reports whether the trimmed line is a reference list heading.
func IsHeading(line string) bool {
	return headingRegex.MatchString(strings.TrimSpace(line))
}

// LooksLikeCitation reports whether the line carries a plausible year token,
// including years with a letter suffix such as "2020a".
func LooksLikeCitation(line string) bool {
	return suspectYearRegex.MatchString(line)
}

// isInitials reports whether token is a run of initials such as "J." or "J.-P.".
func isInitials(token string) bool {
	return initialsRegex.MatchString(token)
}

// findAll returns every non-overlapping occurrence of the pattern in line.
func (p *Pattern) findAll(line string) []Match {
	indexes := p.Regex.FindAllStringSubmatchIndex(line, -1)
	if len(indexes) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(indexes))
	for _, idx := range indexes {
		matches = append(matches, p.build(line, idx))
	}

	return matches
}

// matchStart matches the pattern at the beginning of line.
func (p *Pattern) matchStart(line string) (Match, bool) {
	idx := p.Regex.FindStringSubmatchIndex(line)
	if idx == nil || idx[0] != 0 {
		return Match{}, false
	}

	return p.build(line, idx), true
}

func (p *Pattern) build(line string, idx []int) Match {
	m := Match{
		Pattern: p,
		Groups:  make([]string, 0, p.YearGroup),
		YearEnd: idx[2*p.YearGroup+1],
	}

	for g := 1; g <= p.YearGroup; g++ {
		m.Groups = append(m.Groups, group(line, idx, g))
	}

	if 2*(p.YearGroup+1) < len(idx) {
		m.Title = group(line, idx, p.YearGroup+1)
	}

	m.Record = Normalize(m.Groups, p.Form)

	return m
}

func group(line string, idx []int, g int) string {
	start, end := idx[2*g], idx[2*g+1]
	if start < 0 {
		return ""
	}

	return line[start:end]
}
