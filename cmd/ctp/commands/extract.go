package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/pkg/corpus"
	"github.com/olivercalder/character-text-pipeline/pkg/extractor"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] [file...]",
	Short: "Extract raw character speech from TEI-encoded plays",
	Long: `Extract reads TEI-encoded xml transcripts and writes one character's
speech per line of output. Each line is a tsv row: the play identifier
(the filename without extension), the character's name, and the raw xml
line and paragraph elements spoken by that character.

Examples:
  # Single play
  ctp extract ham.xml

  # Every play listed in a csv file, looked up in a directory
  ctp extract -d plays -c filelist.csv

  # Write to a file instead of stdout
  ctp extract ham.xml -o ham.tsv`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.StringP("dir", "d", "", "directory prepended to every input filename")
	flags.StringP("csv", "c", "", "csv file whose first column lists play identifiers (\".xml\" is appended)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	ext := extractor.New()
	var rows []corpus.Row
	for _, filename := range filenames {
		if dir != "" {
			filename = filepath.Join(dir, filename)
		}
		logger.Debug("extracting speech", "file", filename)
		fileRows, err := ext.ExtractFile(filename)
		if err != nil {
			logger.Error("extraction failed", "file", filename, "error", err)
			return err
		}
		rows = append(rows, fileRows...)
	}

	logger.Info("extraction complete", "plays", len(filenames), "characters", len(rows))

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutputRows(outPath, rows, "\t")
}

// filenamesFromCSV reads play identifiers from the first column of a
// csv file and turns each into an xml filename.
func filenamesFromCSV(path string) ([]string, error) {
	f, err := os.Open(path) //#nosec G304 -- CLI tool reads a user-specified file list
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	filenames := make([]string, 0, len(records))
	for _, record := range records {
		if len(record) == 0 || record[0] == "" {
			continue
		}
		filenames = append(filenames, record[0]+".xml")
	}
	return filenames, nil
}
