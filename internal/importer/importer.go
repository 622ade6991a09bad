// Package importer bulk-converts question banks authored in foreign
// formats (Aiken, GIFT, CSV, Moodle XML, JSON) into one-item-per-file
// bank YAML. Imported items still go through the validator on the next
// build; the importer only has to produce plausible records.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"quizbank/internal/domain"

	"gopkg.in/yaml.v3"
)

// Options carries authoring defaults applied when the source format has
// no field of its own.
type Options struct {
	IDPrefix       string
	StartIndex     int
	DefaultPoints  float64
	Topic          string
	Difficulty     string
	Tags           []string
	Author         string
	License        string
	ShuffleChoices *bool
	// CSVMap renames expected CSV columns, e.g. {"stem": "Question"}.
	CSVMap map[string]string
}

// ImportFunc parses one input file into question items.
type ImportFunc func(path string, opts Options) ([]domain.QuestionItem, error)

var formats = map[string]ImportFunc{
	"aiken":     ImportAiken,
	"gift":      ImportGIFT,
	"csv":       ImportCSV,
	"moodlexml": ImportMoodleXML,
	"json":      ImportJSON,
}

// Lookup returns the importer registered for a format name.
func Lookup(format string) (ImportFunc, bool) {
	f, ok := formats[format]
	return f, ok
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AssignIDs fills in generated ids (<prefix>.NNN) and authoring defaults
// for items the source left incomplete.
func AssignIDs(items []domain.QuestionItem, opts Options) {
	i := opts.StartIndex
	if i < 1 {
		i = 1
	}
	for k := range items {
		it := &items[k]
		if it.ID == "" {
			it.ID = fmt.Sprintf("%s.%03d", opts.IDPrefix, i)
			i++
		}
		if it.Version == 0 {
			it.Version = 1
		}
		if it.Points == 0 {
			it.Points = defaultPoints(opts)
		}
		if it.Difficulty == "" {
			it.Difficulty = opts.Difficulty
		}
		if it.Tags == nil {
			it.Tags = []string{}
		}
		isChoice := it.Type == domain.TypeSingleChoice || it.Type == domain.TypeMultiChoice
		if isChoice && it.ShuffleChoices == nil && opts.ShuffleChoices != nil {
			it.ShuffleChoices = opts.ShuffleChoices
		}
	}
}

// WriteItemFile writes one item as q-<slug>-NNN.yaml under outDir and
// returns the path.
func WriteItemFile(item domain.QuestionItem, outDir string, index int) (string, error) {
	base := slugify(item.Topic)
	if base == "" {
		base = slugify(item.ID)
	}
	if base == "" {
		base = "item"
	}
	path := filepath.Join(outDir, fmt.Sprintf("q-%s-%03d.yaml", base, index))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(item)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func defaultPoints(opts Options) float64 {
	if opts.DefaultPoints > 0 {
		return opts.DefaultPoints
	}
	return 1
}

func defaultTopic(opts Options) string {
	if opts.Topic != "" {
		return opts.Topic
	}
	return "Imported"
}

// newItem seeds a record with the authoring defaults every importer shares.
func newItem(t domain.QuestionType, stem string, opts Options) domain.QuestionItem {
	return domain.QuestionItem{
		Version:    1,
		Type:       t,
		Points:     defaultPoints(opts),
		Stem:       stem,
		Topic:      defaultTopic(opts),
		Difficulty: opts.Difficulty,
		Tags:       slugifyTags(opts.Tags),
		Author:     opts.Author,
		License:    opts.License,
	}
}

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9.-]+`)
)

func slugify(s string) string {
	s = slugSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	s = slugInvalid.ReplaceAllString(s, "")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

func slugifyTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if s := slugify(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}
