package apa

// Outcome is the result of looking up one record on the other side.
type Outcome struct {
	Record      Record
	Counterpart Record
	Found       bool
}

// Tally counts successes and failures of one matching pass.
type Tally struct {
	OK   int
	Fail int
}

// Total returns the number of records checked.
func (t Tally) Total() int {
	return t.OK + t.Fail
}

// Percent returns the truncated success rate, or 0 when nothing was checked.
func (t Tally) Percent() int {
	if t.Total() == 0 {
		return 0
	}

	return 100 * t.OK / t.Total()
}

// MatchResult holds both matching passes.
type MatchResult struct {
	Citations      []Outcome
	References     []Outcome
	CitationTally  Tally
	ReferenceTally Tally
}

// Matches reports whether citation c is backed by reference r: same year and
// every cited name other than EtAl appears among the reference's names.
func Matches(c, r Record) bool {
	if c.Year != r.Year {
		return false
	}

	for _, name := range c.Names {
		if name != EtAl && !r.Has(name) {
			return false
		}
	}

	return true
}

// CrossCheck cross-checks citations against references in both directions.
// In both passes the first counterpart in collection order wins.
func CrossCheck(citations, references []Record) MatchResult {
	refsByYear := groupByYear(references)
	citesByYear := groupByYear(citations)

	var res MatchResult

	for _, c := range citations {
		out := Outcome{Record: c}
		out.Counterpart, out.Found = first(refsByYear[c.Year], func(r Record) bool {
			return Matches(c, r)
		})

		res.Citations = append(res.Citations, out)
		res.CitationTally.add(out.Found)
	}

	for _, r := range references {
		out := Outcome{Record: r}
		out.Counterpart, out.Found = first(citesByYear[r.Year], func(c Record) bool {
			return Matches(c, r)
		})

		res.References = append(res.References, out)
		res.ReferenceTally.add(out.Found)
	}

	return res
}

func (t *Tally) add(ok bool) {
	if ok {
		t.OK++
	} else {
		t.Fail++
	}
}

func groupByYear(records []Record) map[string][]Record {
	byYear := make(map[string][]Record)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	return byYear
}

func first(records []Record, pred func(Record) bool) (Record, bool) {
	for _, r := range records {
		if pred(r) {
			return r, true
		}
	}

	return Record{}, false
}
