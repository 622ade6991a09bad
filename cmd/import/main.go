// Command import bulk-converts questions in foreign formats into
// one-item-per-file bank YAML.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"quizbank/internal/config"
	"quizbank/internal/importer"
	"quizbank/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 2
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 2
	}
	defer logger.Sync()

	var (
		format        = flag.String("format", "", "input format: "+strings.Join(importer.Formats(), "|"))
		input         = flag.String("input", "", "input file path")
		outDir        = flag.String("outdir", "qbank/imported", "output directory for YAML items")
		idPrefix      = flag.String("id-prefix", "imported.item", "id prefix when the source lacks stable ids")
		startIndex    = flag.Int("start-index", 1, "starting index for generated ids")
		defaultPoints = flag.Float64("default-points", 1, "points when the source has none")
		topic         = flag.String("topic", "Imported", "default topic")
		difficulty    = flag.String("difficulty", "easy", "default difficulty")
		tags          = flag.String("tags", "", "comma-separated default tags")
		author        = flag.String("author", "Unknown", "default author")
		license       = flag.String("license", "CC-BY-4.0", "default license")
		shuffle       = flag.String("shuffle-choices", "", "set shuffle_choices for choice items: true|false")
		dryRun        = flag.Bool("dry-run", false, "print YAML instead of writing files")
		csvMap        = flag.String("csv-map", "", "CSV column mapping, e.g. stem=Question,choiceA=A")
	)
	flag.Parse()

	importFn, ok := importer.Lookup(*format)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown format %q; known: %s\n", *format, strings.Join(importer.Formats(), ", "))
		return 2
	}
	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing -input")
		return 2
	}

	opts := importer.Options{
		IDPrefix:      *idPrefix,
		StartIndex:    *startIndex,
		DefaultPoints: *defaultPoints,
		Topic:         *topic,
		Difficulty:    *difficulty,
		Author:        *author,
		License:       *license,
	}
	if *tags != "" {
		opts.Tags = strings.Split(*tags, ",")
	}
	if *shuffle != "" {
		v := *shuffle == "true" || *shuffle == "1"
		opts.ShuffleChoices = &v
	}
	if *csvMap != "" {
		opts.CSVMap = make(map[string]string)
		for _, pair := range strings.Split(*csvMap, ",") {
			k, v, found := strings.Cut(pair, "=")
			if !found {
				fmt.Fprintf(os.Stderr, "bad -csv-map entry: %q\n", pair)
				return 2
			}
			opts.CSVMap[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	items, err := importFn(*input, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if len(items) == 0 {
		fmt.Println("No items parsed.")
		return 1
	}

	importer.AssignIDs(items, opts)

	wrote := 0
	for i, item := range items {
		if *dryRun {
			data, err := yaml.Marshal(item)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			fmt.Println(string(data))
			continue
		}
		path, err := importer.WriteItemFile(item, *outDir, *startIndex+i)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		wrote++
		fmt.Printf("Wrote %s\n", path)
	}

	logger.Get().Info("Import finished",
		zap.String("format", *format),
		zap.Int("parsed", len(items)),
		zap.Int("written", wrote),
	)
	fmt.Printf("Imported %d item(s) to %s\n", wrote, *outDir)
	return 0
}
