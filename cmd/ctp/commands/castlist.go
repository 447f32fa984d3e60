package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/cleaner/markup"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
	"github.com/olivercalder/character-text-pipeline/pkg/extractor"
)

var castlistCmd = &cobra.Command{
	Use:   "castlist [flags] [file...]",
	Short: "Extract character names from dramatis personae divisions",
	Long: `Castlist reads TEI-encoded xml transcripts and writes one cast entry
per line of output. Each line is a tsv row: the play identifier (the
filename without extension) joined by a hyphen to the number of the
dramatis personae division the entry was found in, followed by the
character's cleaned name and description.

The output seeds the character dictionary consumed by combine.

Examples:
  # Single play
  ctp castlist ham.xml

  # Every play listed in a csv file, looked up in a directory
  ctp castlist -d plays -c filelist.csv -o characters.tsv`,
	RunE: runCastlist,
}

func init() {
	rootCmd.AddCommand(castlistCmd)

	flags := castlistCmd.Flags()
	flags.StringP("dir", "d", "", "directory prepended to every input filename")
	flags.StringP("csv", "c", "", "csv file whose first column lists play identifiers (\".xml\" is appended)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("markup-config", "", "yaml file overriding the markup cleaning tables")
}

func runCastlist(cmd *cobra.Command, args []string) error {
	initLogging()

	dir, _ := cmd.Flags().GetString("dir")
	csvPath, _ := cmd.Flags().GetString("csv")

	filenames := append([]string(nil), args...)
	if csvPath != "" {
		fromCSV, err := filenamesFromCSV(csvPath)
		if err != nil {
			logger.Error("failed to read file list", "path", csvPath, "error", err)
			return err
		}
		filenames = append(filenames, fromCSV...)
	}
	if len(filenames) == 0 {
		return cmd.Help()
	}

	var cfg *markup.Config
	if path, _ := cmd.Flags().GetString("markup-config"); path != "" {
		loaded, err := markup.LoadConfig(path)
		if err != nil {
			logger.Error("failed to load markup config", "path", path, "error", err)
			return err
		}
		cfg = loaded
	}

	ext := extractor.NewCast(cfg)
	var rows []corpus.Row
	for _, filename := range filenames {
		if dir != "" {
			filename = filepath.Join(dir, filename)
		}
		logger.Debug("extracting cast", "file", filename)
		fileRows, err := ext.ExtractFile(filename)
		if err != nil {
			logger.Error("cast extraction failed", "file", filename, "error", err)
			return err
		}
		rows = append(rows, fileRows...)
	}

	logger.Info("cast extraction complete", "plays", len(filenames), "entries", len(rows))

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutputRows(outPath, rows, "\t")
}
