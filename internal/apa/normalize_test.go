package apa

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		groups   []string
		form     Form
		expected Record
	}{
		{
			name:     "single name",
			groups:   []string{"Smith", "2020"},
			expected: Record{Names: []string{"Smith"}, Year: "2020"},
		},
		{
			name:     "trailing comma list",
			groups:   []string{"Smith, Jones, ", "Lee", "2020"},
			expected: Record{Names: []string{"Smith", "Jones", "Lee"}, Year: "2020"},
		},
		{
			name:     "et al. kept as a name",
			groups:   []string{"Smith", "et al.", "2020"},
			expected: Record{Names: []string{"Smith", EtAl}, Year: "2020"},
		},
		{
			name:     "year copied verbatim",
			groups:   []string{"Smith", " 2020"},
			expected: Record{Names: []string{"Smith"}, Year: " 2020"},
		},
		{
			name:     "duplicate names collapse",
			groups:   []string{"Smith, Smith, ", "Smith", "1999"},
			expected: Record{Names: []string{"Smith"}, Year: "1999"},
		},
		{
			name:     "full form drops initials",
			groups:   []string{"Smith, J.-P., Jones, K. L., ", "Lee, M.", "2020"},
			form:     FormFull,
			expected: Record{Names: []string{"Smith", "Jones", "Lee"}, Year: "2020"},
		},
		{
			name:     "short form keeps everything",
			groups:   []string{"Smith, J.", "2020"},
			form:     FormShort,
			expected: Record{Names: []string{"Smith", "J."}, Year: "2020"},
		},
		{
			name:     "empty input",
			groups:   nil,
			expected: Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.groups, tt.form)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Normalize(%q) = %#v, want %#v", tt.groups, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	groups := []string{"Smith, Jones, ", "Lee", "2020"}

	first := Normalize(groups, FormShort)
	second := Normalize(groups, FormShort)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalize is not a pure function: %v != %v", first, second)
	}

	if groups[0] != "Smith, Jones, " {
		t.Errorf("Normalize mutated its input: %q", groups)
	}
}

func TestRecordString(t *testing.T) {
	r := Record{Names: []string{"Doe", "Lee"}, Year: "2019"}

	if got, want := r.String(), `{"Doe", "Lee"}, 2019`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRecordEqualIgnoresOrder(t *testing.T) {
	a := Record{Names: []string{"Doe", "Lee"}, Year: "2019"}
	b := Record{Names: []string{"Lee", "Doe"}, Year: "2019"}

	if !a.Equal(b) {
		t.Errorf("Expected %s to equal %s", a, b)
	}

	b.Year = "2018"
	if a.Equal(b) {
		t.Errorf("Expected %s not to equal %s", a, b)
	}
}
