package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/internal/output"
	"github.com/olivercalder/character-text-pipeline/pkg/cleaner"
	"github.com/olivercalder/character-text-pipeline/pkg/cleaner/markup"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean extracted speech into plain lowercase text",
	Long: `Clean resolves the xml markup in extracted speech, transliterates
non-ASCII characters, and strips punctuation, leaving one character's
lowercase words per line of output.

A fragment that fails to clean aborts the run: malformed markup means
the transcript needs fixing, not silent truncation.

Examples:
  ctp extract ham.xml | ctp clean

  # Custom tag policy tables
  ctp clean -i ham.tsv --markup-config policy.yaml

  # Summarize what was removed
  ctp clean -i ham.tsv -o ham.txt --report --report-format json`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringP("input", "i", "", "input file (default: stdin)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("markup-config", "", "yaml file with tag policy tables and entity rules")
	flags.Bool("report", false, "write a cleaning report to stderr")
	flags.String("report-format", "text", "report format: text, json, yaml")
}

func runClean(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg := markup.DefaultConfig()
	if cfgPath, _ := cmd.Flags().GetString("markup-config"); cfgPath != "" {
		var err error
		cfg, err = markup.LoadConfig(cfgPath)
		if err != nil {
			logger.Error("failed to load markup config", "path", cfgPath, "error", err)
			return err
		}
	}

	inPath, _ := cmd.Flags().GetString("input")
	rows, _, err := readInputRows(inPath)
	if err != nil {
		return err
	}

	markupCleaner := markup.New(cfg)
	ascii := cleaner.NewASCII()
	punct := cleaner.NewPunct()
	totals := markup.NewStats()

	cleaned := make([]corpus.Row, len(rows))
	for i, row := range rows {
		fields := make([]string, len(row.Fields))
		for j, fragment := range row.Fields {
			result := markupCleaner.CleanWithStats(fragment)
			totals.Merge(result.Stats)
			if result.Err != nil {
				logger.Error("cleaning failed",
					"play", row.ID, "character", row.Character, "error", result.Err)
				return result.Err
			}
			text := result.Content
			if text, err = ascii.Clean(text); err != nil {
				return err
			}
			if text, err = punct.Clean(text); err != nil {
				return err
			}
			fields[j] = text
		}
		cleaned[i] = corpus.Row{ID: row.ID, Character: row.Character, Fields: fields}
	}

	logger.Info("cleaning complete",
		"rows", len(cleaned),
		"elements_deleted", totals.TotalElementsDeleted(),
		"gaps_filled", totals.GapsFilled)

	if report, _ := cmd.Flags().GetBool("report"); report {
		formatStr, _ := cmd.Flags().GetString("report-format")
		writer, err := output.NewWriter(os.Stderr, output.Format(formatStr))
		if err != nil {
			logger.Error("failed to create report writer", "format", formatStr, "error", err)
			return err
		}
		if err := writer.Write(totals); err != nil {
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}
	}

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutputRows(outPath, cleaned, " ")
}
