package render

import (
	"fmt"
	"strings"

	"quizbank/internal/domain"
)

// Markdown renders a quiz as a GitHub-flavored Markdown paper test with
// an answer key. Stems and choices are already Markdown, so they pass
// through untouched.
type Markdown struct{}

func (Markdown) Name() string { return "markdown" }

func (Markdown) Render(def domain.QuizDefinition, items []domain.QuestionItem) ([]byte, error) {
	var lines []string
	lines = append(lines, "# "+mdEscape(title(def)))
	lines = append(lines, "")
	if def.Instructions != "" {
		lines = append(lines, strings.TrimRight(def.Instructions, "\n"))
		lines = append(lines, "")
	}

	for n, item := range items {
		lines = append(lines, renderItemMarkdown(n+1, item))
	}

	lines = append(lines, "---")
	lines = append(lines, "")
	lines = append(lines, "## Answer Key")
	lines = append(lines, "")
	for n, item := range items {
		lines = append(lines, fmt.Sprintf("%d. **%s**", n+1, answerKey(item)))
		if item.Solution != "" {
			lines = append(lines, "    - "+strings.TrimSpace(item.Solution))
		}
	}
	lines = append(lines, "")

	return []byte(strings.Join(lines, "\n")), nil
}

func renderItemMarkdown(n int, item domain.QuestionItem) string {
	var out []string
	out = append(out, fmt.Sprintf("### %d. (%s)", n, formatPoints(item.Points)))
	out = append(out, "")
	out = append(out, strings.TrimRight(item.Stem, "\n"))
	out = append(out, "")

	switch item.Type {
	case domain.TypeSingleChoice, domain.TypeMultiChoice:
		for i, c := range item.Choices {
			out = append(out, fmt.Sprintf("- %s. %s", choiceLetter(i), c.Text))
		}
		out = append(out, "")
	case domain.TypeBoolean:
		out = append(out, "- A. True")
		out = append(out, "- B. False")
		out = append(out, "")
	case domain.TypeNumeric:
		out = append(out, "_"+numericHint(item)+"_")
		out = append(out, "")
	case domain.TypeFreeText:
		out = append(out, "_Answer: short text_")
		out = append(out, "")
	}

	return strings.Join(out, "\n")
}

func title(def domain.QuizDefinition) string {
	if def.Title != "" {
		return def.Title
	}
	if def.ID != "" {
		return def.ID
	}
	return "Quiz"
}

// mdEscape lightly escapes headings; stems and choices are already Markdown.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}
