package bank

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quizbank/internal/domain"

	"gopkg.in/yaml.v3"
)

// Record pairs a decoded question item with the file it came from, so
// duplicate-id reports can name both source locations.
type Record struct {
	Item   domain.QuestionItem
	Source string
	// LoadErrors carries field-level decode problems (wrong primitive
	// types, unknown fields) found while reading the file. They are
	// per-record violations aggregated by the validator, never fatal to
	// the rest of the bank.
	LoadErrors domain.ValidationErrors
}

// LoadDir reads every *.yaml / *.yml file under dir (recursively) into
// records. Only malformed YAML and multi-document files are fatal: a
// record with wrong-typed fields still loads, with the mismatches
// attached, so one bad record never hides the violations in the rest.
func LoadDir(dir string) ([]Record, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewParseError(dir, err)
	}
	// WalkDir is already lexical, but be explicit: store order is load order.
	sort.Strings(paths)

	records := make([]Record, 0, len(paths))
	for _, p := range paths {
		item, loadErrs, err := LoadItemFile(p)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Item: item, Source: p, LoadErrors: loadErrs})
	}
	return records, nil
}

// LoadItemFile decodes one question record. Wrong-typed and unknown
// fields come back as violations on the record, alongside whatever the
// decoder could still fill in; the error return is reserved for
// unreadable files, broken YAML, and multi-document files.
func LoadItemFile(path string) (domain.QuestionItem, domain.ValidationErrors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.QuestionItem{}, nil, domain.NewParseError(path, err)
	}
	var item domain.QuestionItem
	if err := decodeStrict(data, &item); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			errs := make(domain.ValidationErrors, 0, len(typeErr.Errors))
			for _, msg := range typeErr.Errors {
				errs = append(errs, domain.NewFieldError("", msg))
			}
			return item, errs, nil
		}
		return domain.QuestionItem{}, nil, domain.NewParseError(path, err)
	}
	return item, nil, nil
}

// LoadQuizFile decodes one quiz definition. A definition is a single
// build input, so any decode problem is fatal to that build.
func LoadQuizFile(path string) (domain.QuizDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.QuizDefinition{}, domain.NewParseError(path, err)
	}
	var def domain.QuizDefinition
	if err := decodeStrict(data, &def); err != nil {
		return domain.QuizDefinition{}, domain.NewParseError(path, err)
	}
	return def, nil
}

// decodeStrict decodes exactly one document. Type mismatches and unknown
// fields surface as a *yaml.TypeError so callers can treat them as data
// problems; everything else is a syntax-level failure.
func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	decodeErr := decoder.Decode(out)
	var typeErr *yaml.TypeError
	if decodeErr != nil && !errors.As(decodeErr, &typeErr) {
		return decodeErr
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("multiple documents are not supported")
		}
		return err
	}
	return decodeErr
}
