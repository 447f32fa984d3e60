package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
)

var separateCmd = &cobra.Command{
	Use:   "separate",
	Short: "Write each character's speech to its own file",
	Long: `Separate writes each input row to a file named <ID>_<Character>.txt
containing only that character's text. The input passes through to the
output unchanged, so separate can sit in the middle of a pipeline to
snapshot a stage without interrupting it:

  ctp extract ham.xml | ctp clean | ctp separate -d cleaned | \
      ctp translate -d standardizer_dictionary.txt`,
	RunE: runSeparate,
}

func init() {
	rootCmd.AddCommand(separateCmd)

	flags := separateCmd.Flags()
	flags.StringP("input", "i", "", "input file (default: stdin)")
	flags.StringP("output", "o", "", "output file for the pass-through copy (default: stdout)")
	flags.StringP("dir", "d", "", "directory for the per-character files")
	flags.BoolP("match-dirs", "m", false, "sort character files into per-play subdirectories")
}

func runSeparate(cmd *cobra.Command, args []string) error {
	initLogging()

	inPath, _ := cmd.Flags().GetString("input")
	in, err := openInput(inPath)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		logger.Error("failed to read input", "error", err)
		return err
	}
	rows, err := corpus.ParseRows(string(data), "")
	if err != nil {
		logger.Error("failed to parse input rows", "error", err)
		return err
	}

	dir, _ := cmd.Flags().GetString("dir")
	matchDirs, _ := cmd.Flags().GetBool("match-dirs")
	opts := corpus.SeparateOptions{
		Dir:       dir,
		MatchDirs: matchDirs,
		Delimiter: corpus.DetectDelimiter(string(data)),
	}
	if err := corpus.Separate(rows, opts); err != nil {
		logger.Error("failed to separate rows", "error", err)
		return err
	}
	logger.Info("separation complete", "files", len(rows), "dir", dir)

	// Pass the input through untouched.
	outPath, _ := cmd.Flags().GetString("output")
	out, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := out.Write(data); err != nil {
		logger.Error("failed to write pass-through output", "error", err)
		return err
	}
	return nil
}
