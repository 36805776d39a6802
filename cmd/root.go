package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/btraven00/apacheck/internal/manuscript"
)

// Version is set at build time via ldflags
var Version = "0.13.0"

var (
	cfgFile  string
	quiet    bool
	verbose  bool
	encoding string
)

// rootCmd checks the manuscript given as its only argument
var rootCmd = &cobra.Command{
	Use:   "apacheck <manuscript>",
	Short: "Check that APA in-text citations and the reference list match",
	Long: `Apacheck reads a manuscript written in APA style and checks that every
in-text citation has an entry in the reference list, and that every entry in
the reference list is cited in the text.

Save the manuscript as plain text (UTF-8 by default). Word, OpenDocument, RTF
and PDF files are converted to text first. The report can be long; redirect
it to a file to examine it later.

Known limitations:
1. The reference list must start with a line reading "References",
   "REFERENCES" or "Bibliography", immediately followed by the entries,
   one entry per line.
2. If a paragraph has several citations and at least one is formatted
   correctly, the others may not be spotted. Usually they are detected with
   partial author information, which shows up in the report.
3. Reference entries are only checked for names and years in the correct
   notation. Other information is ignored.
4. Citation details vary from journal to journal. Only a subset of the
   possible formats is recognized; notices of unrecognized citations may be
   false alarms.`,
	Example: `  apacheck manuscript.txt
  apacheck manuscript.txt > report.txt
  apacheck --encoding latin1 manuscript.txt
  apacheck manuscript.docx`,
	Args:          cobra.ExactArgs(1),
	RunE:          runCheck,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = Version

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.apacheck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (suppress progress messages)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every match and discarded duplicate to stderr")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", manuscript.DefaultEncoding, "encoding of plain text manuscripts (utf-8, latin1, windows-1252, utf-16)")

	for _, name := range []string{"quiet", "verbose", "encoding"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".apacheck" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".apacheck")
	}

	viper.SetEnvPrefix("apacheck")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
