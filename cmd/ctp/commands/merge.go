package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [flags] file...",
	Short: "Merge per-character files back into pipeline rows",
	Long: `Merge is the inverse of separate: it reads files named
<ID>_<Character>.txt and writes one row per file. The -l and -r flags
strip extra underscore-separated components from filenames that do not
follow the convention exactly, so

  ctp merge -l 1 text_Ham_Hamlet.txt

produces a row for Ham Hamlet.`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	flags := mergeCmd.Flags()
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("delimiter", "s", "", "output delimiter (default: tab if any file contains one, else space)")
	flags.StringP("filename-separator", "t", "_", "separator between filename components")
	flags.IntP("lstrip", "l", 0, "filename components to drop from the left")
	flags.IntP("rstrip", "r", 0, "filename components to drop from the right")
}

func runMerge(cmd *cobra.Command, args []string) error {
	initLogging()

	if len(args) == 0 {
		return cmd.Help()
	}

	delim, _ := cmd.Flags().GetString("delimiter")
	filenameSep, _ := cmd.Flags().GetString("filename-separator")
	lstrip, _ := cmd.Flags().GetInt("lstrip")
	rstrip, _ := cmd.Flags().GetInt("rstrip")

	rows, err := corpus.Merge(args, corpus.MergeOptions{
		Delimiter:         delim,
		FilenameSeparator: filenameSep,
		LStrip:            lstrip,
		RStrip:            rstrip,
	})
	if err != nil {
		logger.Error("merge failed", "error", err)
		return err
	}
	logger.Info("merge complete", "files", len(rows))

	if delim == "" {
		delim = " "
		for _, row := range rows {
			if strings.Contains(strings.Join(row.Fields, ""), "\t") {
				delim = "\t"
				break
			}
		}
	}

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutputRows(outPath, rows, delim)
}
