package render

import (
	"fmt"
	"strings"

	"quizbank/internal/domain"
)

// Typst renders a quiz as Typst source. Markdown strong (** / __)
// becomes Typst strong (single *); emphasis and inline code are valid
// Typst already and pass through. Braces are escaped so stems cannot
// open code blocks.
type Typst struct{}

func (Typst) Name() string { return "typst" }

func (Typst) Render(def domain.QuizDefinition, items []domain.QuestionItem) ([]byte, error) {
	var lines []string
	lines = append(lines, "#set page(margin: 1in)")
	lines = append(lines, "")
	lines = append(lines, "= "+typstText(title(def)))
	lines = append(lines, "")
	if def.Instructions != "" {
		lines = append(lines, typstText(def.Instructions))
		lines = append(lines, "")
	}

	for n, item := range items {
		lines = append(lines, renderItemTypst(n+1, item))
	}

	lines = append(lines, "---")
	lines = append(lines, "")
	lines = append(lines, "== Answer Key")
	lines = append(lines, "")
	for n, item := range items {
		lines = append(lines, fmt.Sprintf("%d. *%s*", n+1, typstText(answerKey(item))))
		if sol := strings.TrimSpace(item.Solution); sol != "" {
			lines = append(lines, "    - "+typstText(sol))
		}
	}
	lines = append(lines, "")

	return []byte(strings.Join(lines, "\n")), nil
}

func renderItemTypst(n int, item domain.QuestionItem) string {
	var out []string
	out = append(out, fmt.Sprintf("=== %d. (%s)", n, formatPoints(item.Points)))
	out = append(out, typstText(item.Stem))
	out = append(out, "")

	switch item.Type {
	case domain.TypeSingleChoice, domain.TypeMultiChoice:
		for i, c := range item.Choices {
			out = append(out, fmt.Sprintf("- %s. %s", choiceLetter(i), typstText(c.Text)))
		}
		out = append(out, "")
	case domain.TypeBoolean:
		out = append(out, "- A. True")
		out = append(out, "- B. False")
		out = append(out, "")
	case domain.TypeNumeric:
		out = append(out, "_"+typstText(numericHint(item))+"_")
		out = append(out, "")
	case domain.TypeFreeText:
		out = append(out, "_Answer: short text_")
		out = append(out, "")
	}

	return strings.Join(out, "\n")
}

func typstText(s string) string {
	s = strings.TrimRight(s, "\n")
	s = mdBoldStar.ReplaceAllString(s, "*$1*")
	s = mdBoldUscore.ReplaceAllString(s, "*$1*")
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	return s
}
