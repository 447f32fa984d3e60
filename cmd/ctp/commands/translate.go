package commands

import (
	"github.com/spf13/cobra"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/translator"
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Substitute archaic words with modern English forms",
	Long: `Translate rewrites cleaned speech using a priority-annotated
dictionary of the form old:modern:priority. Substitution is exact and
whole-word. Chained dictionaries compose through ordinary pipes:

  ctp clean -i ham.tsv | ctp translate -d dict1.txt | ctp translate -d dict2.txt`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	flags := translateCmd.Flags()
	flags.StringP("input", "i", "", "input file (default: stdin)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("dict", "d", "", "translation dictionary file (required)")
	flags.StringP("separator", "s", ":", "separator between dictionary columns")
	flags.BoolP("preserve-archaic", "p", false, "keep archaic word forms such as \"altereth\"")

	_ = translateCmd.MarkFlagRequired("dict")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	initLogging()

	dictPath, _ := cmd.Flags().GetString("dict")
	sep, _ := cmd.Flags().GetString("separator")
	preserve, _ := cmd.Flags().GetBool("preserve-archaic")

	tr, err := translator.Load(dictPath, translator.Options{
		Separator: sep,
		Modernize: !preserve,
	})
	if err != nil {
		logger.Error("failed to load translation dictionary", "path", dictPath, "error", err)
		return err
	}
	logger.Debug("translation dictionary loaded", "path", dictPath, "entries", tr.Len())

	inPath, _ := cmd.Flags().GetString("input")
	rows, delim, err := readInputRows(inPath)
	if err != nil {
		return err
	}

	translated := tr.Translate(rows)
	logger.Info("translation complete", "rows", len(translated), "entries", tr.Len())

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutputRows(outPath, translated, delim)
}
