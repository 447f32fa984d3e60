package commands

import (
	"github.com/spf13/cobra"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine character name variants under canonical names",
	Long: `Combine canonicalizes abbreviated or inconsistent character names
using a dictionary with lines of the form:

  ID<TAB>raw name<TAB>canonical name

Rows that map to the same canonical name have their speech
concatenated into one row. Names absent from the dictionary pass
through unchanged. Note that combining does not preserve the relative
ordering of speech between merged rows.

Example:
  ctp clean -i ham.tsv | ctp combine -d character_names.tsv`,
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)

	flags := combineCmd.Flags()
	flags.StringP("input", "i", "", "input file (default: stdin)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("dict", "d", "", "character name dictionary file (required)")
	flags.StringP("separator", "s", "\t", "separator between dictionary columns")

	_ = combineCmd.MarkFlagRequired("dict")
}

func runCombine(cmd *cobra.Command, args []string) error {
	initLogging()

	dictPath, _ := cmd.Flags().GetString("dict")
	sep, _ := cmd.Flags().GetString("separator")
	names, err := corpus.LoadCharacterMap(dictPath, sep)
	if err != nil {
		logger.Error("failed to load character dictionary", "path", dictPath, "error", err)
		return err
	}
	logger.Debug("character dictionary loaded", "path", dictPath, "entries", len(names))

	inPath, _ := cmd.Flags().GetString("input")
	rows, delim, err := readInputRows(inPath)
	if err != nil {
		return err
	}

	combined := corpus.Combine(rows, names)
	logger.Info("combination complete", "rows_in", len(rows), "rows_out", len(combined))

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutputRows(outPath, combined, delim)
}
