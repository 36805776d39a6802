package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/btraven00/apacheck/internal/apa"
	"github.com/btraven00/apacheck/internal/manuscript"
)

var patternsTestLine string

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the recognized citation and reference formats",
	Long: `Display the in-text citation and reference list patterns, or test which
of them match a single line of text.

Examples:
  apacheck patterns
  apacheck patterns --test "As shown by Smith and Jones (2020), it holds."
  apacheck patterns --test "Smith, J. (2020). A study of things."`,
	Args: cobra.NoArgs,
	RunE: runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.Flags().StringVarP(&patternsTestLine, "test", "t", "", "test pattern matching for one line of text")
}

func runPatterns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if patternsTestLine != "" {
		testLine(out, patternsTestLine)
		return nil
	}

	listPatterns(out)

	return nil
}

func listPatterns(out io.Writer) {
	fmt.Fprintln(out, "=== In-text Citation Patterns ===")
	printPatterns(out, apa.CitationPatterns())

	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Reference List Patterns ===")
	printPatterns(out, apa.ReferencePatterns())
}

func printPatterns(out io.Writer, patterns []apa.Pattern) {
	for i, p := range patterns {
		fmt.Fprintf(out, "%2d. %s (%s)\n", i+1, p.Name, p.Shape)
		fmt.Fprintf(out, "    %s\n", p.Description)
		fmt.Fprintf(out, "    Examples: %s\n", strings.Join(p.Examples, " | "))
	}
}

func testLine(out io.Writer, line string) {
	line = manuscript.CleanLine(line)
	fmt.Fprintf(out, "=== Testing: %q ===\n", line)

	if apa.IsHeading(line) {
		fmt.Fprintln(out, "Reference list heading: switches the scanner to reference checking")
		return
	}

	fmt.Fprintln(out, "As body text:")

	citations := apa.FindCitations(line)
	for _, m := range citations {
		fmt.Fprintf(out, "  ✅ %s -> %s\n", m.Pattern.Shape, m.Record)
	}

	switch {
	case len(citations) > 0:
	case apa.LooksLikeCitation(line):
		fmt.Fprintln(out, "  ⚠️  No citation matched; reported as an unrecognized potential citation")
	default:
		fmt.Fprintln(out, "  No citation matched")
	}

	fmt.Fprintln(out, "As a reference list entry:")

	references := apa.FindReferences(line)
	for _, m := range references {
		fmt.Fprintf(out, "  ✅ %s -> %s, title %q\n", m.Pattern.Shape, m.Record, m.Title)
	}

	if len(references) == 0 {
		fmt.Fprintln(out, "  ❌ No reference pattern matched; reported as an unrecognized reference item")
	}
}
