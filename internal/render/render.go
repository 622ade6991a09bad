// Package render maps a resolved question list into paper-test markup.
// Each renderer is a per-variant template mapping; markup embedded in
// stems, choices, solutions, and feedback passes through to the target
// syntax without semantic reinterpretation.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"quizbank/internal/domain"
)

// Renderer produces a single artifact in one target markup.
type Renderer interface {
	// Name identifies the format (used in logs and output naming).
	Name() string
	// Render maps the resolved question list into one document.
	Render(def domain.QuizDefinition, items []domain.QuestionItem) ([]byte, error)
}

// WriteArtifact writes data to path via a temp file and rename, so an
// aborted build never leaves a truncated artifact behind.
func WriteArtifact(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// choiceLetter labels choices A, B, C...
func choiceLetter(i int) string {
	return string(rune('A' + i))
}

func formatPoints(points float64) string {
	s := strconv.FormatFloat(points, 'f', -1, 64)
	if points == 1 {
		return s + " pt"
	}
	return s + " pts"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// answerKey renders the plain-text answer for one item, for the answer
// key section shared by every paper format.
func answerKey(item domain.QuestionItem) string {
	switch item.Type {
	case domain.TypeSingleChoice:
		for i, c := range item.Choices {
			if c.Correct {
				return choiceLetter(i)
			}
		}
		return "?"
	case domain.TypeMultiChoice:
		var letters []string
		for i, c := range item.Choices {
			if c.Correct {
				letters = append(letters, choiceLetter(i))
			}
		}
		if len(letters) == 0 {
			return "?"
		}
		return strings.Join(letters, ", ")
	case domain.TypeBoolean:
		if item.BoolAnswer() {
			return "True"
		}
		return "False"
	case domain.TypeNumeric:
		parts := []string{formatNumber(item.NumericAnswer())}
		if item.Tolerance != nil {
			parts = append(parts, "±"+formatNumber(*item.Tolerance))
		}
		if item.Unit != "" {
			parts = append(parts, item.Unit)
		}
		return strings.Join(parts, " ")
	case domain.TypeFreeText:
		if len(item.Answers) == 0 {
			return "?"
		}
		var shown []string
		for _, a := range item.Answers {
			if len(shown) == 3 {
				break
			}
			if a.Regex {
				shown = append(shown, "/"+a.Text+"/")
			} else {
				shown = append(shown, a.Text)
			}
		}
		more := ""
		if len(item.Answers) > 3 {
			more = " ..."
		}
		return strings.Join(shown, "; ") + more
	}
	return "?"
}

// numericHint is the answer-entry hint shown under numeric stems.
func numericHint(item domain.QuestionItem) string {
	if item.Unit != "" {
		return fmt.Sprintf("Answer: numeric (unit: %s)", item.Unit)
	}
	return "Answer: numeric"
}
