package commands

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olivercalder/character-text-pipeline/internal/logger"
	"github.com/olivercalder/character-text-pipeline/internal/output"
	"github.com/olivercalder/character-text-pipeline/pkg/phoneme"
)

var phonemesCmd = &cobra.Command{
	Use:   "phonemes",
	Short: "Convert cleaned speech from words into phonemes",
	Long: `Phonemes rewrites each character's words into cmudict phoneme
sequences. Words missing from the dictionary are dropped from the
output and counted; the counts are written as a tsv report, most
frequent first, so recurring archaic spellings surface at the top.

Examples:
  ctp translate -i ham.txt -d standardizer_dictionary.txt | \
      ctp phonemes -d cmudict.txt -u unknowns.tsv

  # Chain a custom supplementary dictionary
  ctp phonemes -i ham.txt -d cmudict.txt | ctp phonemes -d custom.txt

  # Accumulate unknowns across runs and suggest dictionary words
  ctp phonemes -i ham.txt -d cmudict.txt -l unknowns.tsv -u unknowns.tsv --suggest 3`,
	RunE: runPhonemes,
}

func init() {
	rootCmd.AddCommand(phonemesCmd)

	flags := phonemesCmd.Flags()
	flags.StringP("input", "i", "", "input file (default: stdin)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("dict", "d", "", "phoneme dictionary file in cmudict format (required)")
	flags.StringP("separator", "s", " ", "separator between dictionary columns")
	flags.BoolP("preserve-emphasis", "e", false, "keep emphasis digits on vowel phonemes")
	flags.StringP("unknowns", "u", "", "file for the unknown word counts (default: stderr)")
	flags.String("unknowns-format", "tsv", "unknowns format: tsv, json, yaml")
	flags.StringP("load-unknowns", "l", "", "existing unknowns tsv to increment")
	flags.Int("suggest", 0, "log up to N nearest dictionary words for each frequent unknown")

	_ = phonemesCmd.MarkFlagRequired("dict")
}

// suggestionLimit caps how many unknown words get nearest-match
// suggestions, since each suggestion scans the whole dictionary.
const suggestionLimit = 20

func runPhonemes(cmd *cobra.Command, args []string) error {
	initLogging()

	dictPath, _ := cmd.Flags().GetString("dict")
	sep, _ := cmd.Flags().GetString("separator")
	d, err := phoneme.LoadDict(dictPath, sep)
	if err != nil {
		logger.Error("failed to load phoneme dictionary", "path", dictPath, "error", err)
		return err
	}
	logger.Debug("phoneme dictionary loaded", "path", dictPath, "words", d.Len())

	unknowns := make(phoneme.Unknowns)
	if loadPath, _ := cmd.Flags().GetString("load-unknowns"); loadPath != "" {
		loaded, err := phoneme.LoadUnknowns(loadPath)
		if err != nil {
			logger.Error("failed to load unknowns", "path", loadPath, "error", err)
			return err
		}
		unknowns.Merge(loaded)
	}

	inPath, _ := cmd.Flags().GetString("input")
	rows, _, err := readInputRows(inPath)
	if err != nil {
		return err
	}

	preserve, _ := cmd.Flags().GetBool("preserve-emphasis")
	converted := d.Convert(rows, unknowns, phoneme.Options{PreserveEmphasis: preserve})
	logger.Info("phoneme conversion complete",
		"rows", len(converted),
		"unknown_words", len(unknowns),
		"unknown_occurrences", unknowns.Total())

	if n, _ := cmd.Flags().GetInt("suggest"); n > 0 {
		logSuggestions(d, unknowns, n)
	}

	var unknownsOut io.Writer = os.Stderr
	if unknownsPath, _ := cmd.Flags().GetString("unknowns"); unknownsPath != "" {
		f, err := os.Create(unknownsPath) //#nosec G304 -- CLI tool writes to a user-specified file
		if err != nil {
			logger.Error("failed to create unknowns file", "path", unknownsPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		unknownsOut = f
	}
	if err := writeUnknowns(cmd, unknownsOut, unknowns); err != nil {
		logger.Error("failed to write unknowns", "error", err)
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutputRows(outPath, converted, " ")
}

// writeUnknowns writes the unknown word counts in the requested format.
func writeUnknowns(cmd *cobra.Command, w io.Writer, unknowns phoneme.Unknowns) error {
	format, _ := cmd.Flags().GetString("unknowns-format")
	if format == "tsv" {
		return unknowns.WriteTSV(w)
	}
	writer, err := output.NewWriter(w, output.Format(format))
	if err != nil {
		return err
	}
	if err := writer.Write(map[string]int(unknowns)); err != nil {
		return err
	}
	return writer.Close()
}

// logSuggestions logs the nearest dictionary words for the most
// frequent unknowns.
func logSuggestions(d *phoneme.Dict, unknowns phoneme.Unknowns, n int) {
	words := make([]string, 0, len(unknowns))
	for word := range unknowns {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if unknowns[words[i]] != unknowns[words[j]] {
			return unknowns[words[i]] > unknowns[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > suggestionLimit {
		words = words[:suggestionLimit]
	}
	for _, word := range words {
		logger.Info("unknown word",
			"word", word,
			"count", unknowns[word],
			"nearest", strings.Join(d.Suggest(word, n), ", "))
	}
}
