// Package commands implements the CLI commands for ctp.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
)

var rootCmd = &cobra.Command{
	Use:   "ctp",
	Short: "Character text pipeline for TEI-encoded play transcripts",
	Long: `Ctp turns TEI-encoded play transcripts into per-character speech
corpora. Each stage reads one character's text per line and writes the
same shape back out, so stages compose with ordinary pipes.

Examples:
  # Extract speech from a play and clean it
  ctp extract ham.xml | ctp clean

  # Full pipeline: extract, clean, modernize, convert to phonemes
  ctp extract -d plays -c filelist.csv | ctp clean | \
      ctp translate -d standardizer_dictionary.txt | \
      ctp phonemes -d cmudict.txt -u unknowns.tsv

  # Save the cleaned text per character without breaking the pipe
  ctp extract ham.xml | ctp clean | ctp separate -d cleaned | \
      ctp translate -d standardizer_dictionary.txt

  # Rebuild rows from per-character files
  ctp merge cleaned/*.txt`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.ctp.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".ctp")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CTP")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initLogging configures the logger from the global flags. Every RunE
// calls it first.
func initLogging() {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})
}

// openInput returns the reader for a stage's input. An empty path or
// "-" means stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path) //#nosec G304 -- CLI tool reads a user-specified input file
	if err != nil {
		logger.Error("failed to open input file", "path", path, "error", err)
		return nil, err
	}
	return f, nil
}

// openOutput returns the writer for a stage's output. An empty path or
// "-" means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path) //#nosec G304 -- CLI tool writes to a user-specified output file
	if err != nil {
		logger.Error("failed to create output file", "path", path, "error", err)
		return nil, err
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// readInputRows reads and parses a stage's entire input, returning the
// rows along with the delimiter detected across the raw input so a
// stage can write its output in kind.
func readInputRows(path string) ([]corpus.Row, string, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		return nil, "", err
	}
	rows, err := corpus.ParseRows(string(data), "")
	if err != nil {
		logger.Error("failed to parse input rows", "error", err)
		return nil, "", err
	}
	return rows, corpus.DetectDelimiter(string(data)), nil
}

// writeOutputRows writes rows to a stage's output.
func writeOutputRows(path string, rows []corpus.Row, delim string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if err := corpus.WriteRows(out, rows, delim); err != nil {
		logger.Error("failed to write output rows", "error", err)
		return err
	}
	return nil
}
