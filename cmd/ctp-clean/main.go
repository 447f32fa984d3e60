// ctp-clean is a standalone tool for testing and developing the markup
// cleaner on a single speech fragment.
//
// Usage:
//
//	ctp-clean [options] [file]
//
// Examples:
//
//	# Clean a fragment from a file and show stats
//	ctp-clean fragment.xml
//
//	# Clean from stdin with a custom tag policy config
//	echo '<l>To be, or not to be</l>' | ctp-clean -config policy.yaml
//
//	# Run the full chain (markup, transliteration, punctuation)
//	ctp-clean -chain fragment.xml
//
//	# Show only stats, as JSON
//	ctp-clean -stats-only -json fragment.xml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/olivercalder/character-text-pipeline/pkg/cleaner"
	"github.com/olivercalder/character-text-pipeline/pkg/cleaner/markup"
)

var (
	// Config options
	configFile = flag.String("config", "", "Yaml file with tag policy tables and entity rules")
	chain      = flag.Bool("chain", false, "Run the full chain: markup, transliteration, punctuation")

	// Output options
	outputFile = flag.String("o", "", "Write cleaned output to file")
	statsOnly  = flag.Bool("stats-only", false, "Only show stats, don't output content")
	jsonStats  = flag.Bool("json", false, "Output stats as JSON")
	quiet      = flag.Bool("q", false, "Quiet mode (no stats, only content)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ctp-clean - Test tool for the markup cleaner\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ctp-clean [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Reads one speech fragment from the file, or from stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ctp-clean fragment.xml\n")
		fmt.Fprintf(os.Stderr, "  echo '<l>To be</l>' | ctp-clean -chain\n")
		fmt.Fprintf(os.Stderr, "  ctp-clean -stats-only -json fragment.xml\n")
	}

	flag.Parse()

	var fragment string
	var source string
	var err error

	if flag.NArg() > 0 {
		source = flag.Arg(0)
		fragment, err = readFile(source)
	} else {
		var data []byte
		data, err = io.ReadAll(os.Stdin)
		fragment = string(data)
		source = "stdin"
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(fragment) == 0 {
		fmt.Fprintf(os.Stderr, "Error: empty input\n")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	markupCleaner := markup.New(cfg)
	result := markupCleaner.CleanWithStats(fragment)
	if result.Err == nil && *chain {
		content := result.Content
		for _, c := range []cleaner.Cleaner{cleaner.NewASCII(), cleaner.NewPunct()} {
			if content, err = c.Clean(content); err != nil {
				result.Err = err
				break
			}
		}
		result.Content = content
	}

	if !*quiet {
		if *jsonStats {
			outputJSONStats(result, source)
		} else {
			outputTextStats(result, source)
		}
	}

	if result.Err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", result.Err)
		os.Exit(1)
	}

	if !*statsOnly {
		switch {
		case *outputFile != "":
			if err := os.WriteFile(*outputFile, []byte(result.Content+"\n"), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
				os.Exit(1)
			}
			if !*quiet {
				fmt.Fprintf(os.Stderr, "\nWritten to %s\n", *outputFile)
			}
		case !*quiet:
			fmt.Println("\n--- Cleaned Text ---")
			fmt.Println(result.Content)
		default:
			fmt.Println(result.Content)
		}
	}
}

func loadConfig() (*markup.Config, error) {
	if *configFile == "" {
		return markup.DefaultConfig(), nil
	}
	return markup.LoadConfig(*configFile)
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", path, err)
	}
	return string(data), nil
}

func outputTextStats(result *markup.Result, source string) {
	fmt.Fprintf(os.Stderr, "\n=== Markup Cleaner Stats ===\n")
	fmt.Fprintf(os.Stderr, "Source: %s\n", source)
	fmt.Fprintf(os.Stderr, "%s", result.Stats.String())
}

func outputJSONStats(result *markup.Result, source string) {
	stats := struct {
		Source string        `json:"source"`
		Stats  *markup.Stats `json:"stats"`
		Error  string        `json:"error,omitempty"`
	}{
		Source: source,
		Stats:  result.Stats,
	}
	if result.Err != nil {
		stats.Error = result.Err.Error()
	}

	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(stats)
}
