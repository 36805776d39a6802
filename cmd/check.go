package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/btraven00/apacheck/internal/apa"
	"github.com/btraven00/apacheck/internal/manuscript"
	"github.com/btraven00/apacheck/internal/report"
)

// checkSettings are the resolved flag, env and config values for one run.
type checkSettings struct {
	Encoding string
	Quiet    bool
	Verbose  bool
}

func currentSettings() checkSettings {
	return checkSettings{
		Encoding: viper.GetString("encoding"),
		Quiet:    viper.GetBool("quiet"),
		Verbose:  viper.GetBool("verbose"),
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; later failures are not usage errors.
	cmd.SilenceUsage = true

	filename := args[0]
	settings := currentSettings()

	logger, err := newLogger(settings.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !settings.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Checking %s...\n", filename)
	}

	result, err := checkManuscript(cmd.OutOrStdout(), filename, settings, logger)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", filename, err)
	}

	if !settings.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Checked %d citations and %d reference items\n",
			result.CitationTally.Total(), result.ReferenceTally.Total())
	}

	return nil
}

// checkManuscript loads, scans and cross-checks one manuscript, writing the
// report to out.
func checkManuscript(out io.Writer, filename string, settings checkSettings, logger *zap.Logger) (apa.MatchResult, error) {
	lines, err := manuscript.Load(filename, manuscript.Options{Encoding: settings.Encoding})
	if err != nil {
		return apa.MatchResult{}, err
	}

	w := report.NewWriter(out)
	scanner := apa.NewScanner(
		apa.WithReporter(w),
		apa.WithLogger(logger),
		apa.WithCleaner(manuscript.CleanLine))
	scanner.ScanLines(lines)

	logger.Debug("scan complete",
		zap.Int("lines", len(lines)),
		zap.Int("citations", len(scanner.Citations())),
		zap.Int("references", len(scanner.References())))

	result := apa.CrossCheck(scanner.Citations(), scanner.References())
	if err := w.Result(result); err != nil {
		return result, fmt.Errorf("failed to write report: %w", err)
	}

	return result, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	return cfg.Build()
}
