package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizbank/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func sampleItems() []domain.QuestionItem {
	return []domain.QuestionItem{
		{
			ID: "alg.slope.001", Version: 1, Type: domain.TypeSingleChoice,
			Points: 2, Stem: "What is the slope of **y = 3x + 1**?",
			Choices: []domain.Choice{
				{Text: "1"},
				{Text: "3", Correct: true},
				{Text: "-3"},
			},
			Solution: "The coefficient of x is the slope.",
		},
		{
			ID: "alg.props.001", Version: 1, Type: domain.TypeMultiChoice,
			Points: 3, Stem: "Which are prime?",
			Choices: []domain.Choice{
				{Text: "2", Correct: true},
				{Text: "4"},
				{Text: "5", Correct: true},
			},
		},
		{
			ID: "alg.bool.001", Version: 1, Type: domain.TypeBoolean,
			Points: 1, Stem: "Zero is even.", Answer: true,
		},
		{
			ID: "phys.speed.001", Version: 2, Type: domain.TypeNumeric,
			Points: 2, Stem: "Speed of light, roughly?",
			Answer: 3.0e8, Tolerance: floatPtr(1e7), Unit: "m/s",
		},
		{
			ID: "cs.acr.001", Version: 1, Type: domain.TypeFreeText,
			Points: 1, Stem: "What does `CPU` stand for?",
			Answers: []domain.AnswerPattern{
				{Text: "central processing unit"},
				{Text: "central processing unit\\.?", Regex: true},
			},
		},
	}
}

func sampleDef() domain.QuizDefinition {
	return domain.QuizDefinition{
		ID:           "quiz.sample",
		Title:        "Sample Quiz",
		Instructions: "Answer every question.",
	}
}

func TestMarkdownRender(t *testing.T) {
	out, err := Markdown{}.Render(sampleDef(), sampleItems())
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "# Sample Quiz\n"))
	assert.Contains(t, doc, "Answer every question.")
	assert.Contains(t, doc, "### 1. (2 pts)")
	assert.Contains(t, doc, "### 3. (1 pt)")
	assert.Contains(t, doc, "- A. 1")
	assert.Contains(t, doc, "- B. 3")
	assert.Contains(t, doc, "- A. True")
	assert.Contains(t, doc, "_Answer: numeric (unit: m/s)_")
	assert.Contains(t, doc, "_Answer: short text_")
	assert.Contains(t, doc, "## Answer Key")
	assert.Contains(t, doc, "1. **B**")
	assert.Contains(t, doc, "2. **A, C**")
	assert.Contains(t, doc, "3. **True**")
	assert.Contains(t, doc, "4. **300000000 ±10000000 m/s**")
	assert.Contains(t, doc, "5. **central processing unit; /central processing unit\\.?/**")
	assert.Contains(t, doc, "- The coefficient of x is the slope.")
}

func TestMarkdownTitleFallback(t *testing.T) {
	out, err := Markdown{}.Render(domain.QuizDefinition{ID: "quiz.x"}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# quiz.x\n"))

	out, err = Markdown{}.Render(domain.QuizDefinition{}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# Quiz\n"))
}

func TestLaTeXRender(t *testing.T) {
	out, err := LaTeX{}.Render(sampleDef(), sampleItems())
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `\documentclass[11pt]{article}`)
	assert.Contains(t, doc, `\begin{document}`)
	assert.Contains(t, doc, `\end{document}`)
	assert.Contains(t, doc, `\Large Sample Quiz`)
	assert.Contains(t, doc, `\section*{Answer Key}`)
	assert.Contains(t, doc, `\textbf{y = 3x + 1}`, "markdown bold must become \\textbf")
	assert.Contains(t, doc, `\verb|CPU|`, "inline code must become \\verb")
	assert.Contains(t, doc, `\item True`)
	assert.NotContains(t, doc, "**", "raw markdown bold must not survive")
}

func TestLaTeXEscaping(t *testing.T) {
	items := []domain.QuestionItem{{
		ID: "x.001", Version: 1, Type: domain.TypeBoolean,
		Points: 1, Stem: "100% of $5 & #1_a ~ ^", Answer: false,
	}}
	out, err := LaTeX{}.Render(sampleDef(), items)
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `100\% of \$5 \& \#1\_a \textasciitilde{} \textasciicircum{}`)
}

func TestLaTeXLink(t *testing.T) {
	items := []domain.QuestionItem{{
		ID: "x.001", Version: 1, Type: domain.TypeBoolean,
		Points: 1, Stem: "See [the docs](https://example.com/a_b).", Answer: true,
	}}
	out, err := LaTeX{}.Render(sampleDef(), items)
	require.NoError(t, err)
	assert.Contains(t, string(out), `\href{https://example.com/a_b}{the docs}`,
		"link URL must not be escaped")
}

func TestTypstRender(t *testing.T) {
	out, err := Typst{}.Render(sampleDef(), sampleItems())
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "#set page(margin: 1in)\n"))
	assert.Contains(t, doc, "= Sample Quiz")
	assert.Contains(t, doc, "=== 1. (2 pts)")
	assert.Contains(t, doc, "*y = 3x + 1*", "markdown bold must become typst strong")
	assert.Contains(t, doc, "== Answer Key")
	assert.Contains(t, doc, "1. *B*")
	assert.Contains(t, doc, "- A. True")
}

func TestTypstBraceEscaping(t *testing.T) {
	items := []domain.QuestionItem{{
		ID: "x.001", Version: 1, Type: domain.TypeBoolean,
		Points: 1, Stem: "Set notation: {1, 2}", Answer: true,
	}}
	out, err := Typst{}.Render(sampleDef(), items)
	require.NoError(t, err)
	assert.Contains(t, string(out), `\{1, 2\}`)
}

func TestAnswerKeyVariants(t *testing.T) {
	tests := []struct {
		name string
		item domain.QuestionItem
		want string
	}{
		{
			name: "single choice letter",
			item: domain.QuestionItem{Type: domain.TypeSingleChoice, Choices: []domain.Choice{
				{Text: "a"}, {Text: "b"}, {Text: "c", Correct: true},
			}},
			want: "C",
		},
		{
			name: "boolean false",
			item: domain.QuestionItem{Type: domain.TypeBoolean, Answer: false},
			want: "False",
		},
		{
			name: "numeric without tolerance or unit",
			item: domain.QuestionItem{Type: domain.TypeNumeric, Answer: 42.5},
			want: "42.5",
		},
		{
			name: "free text truncates after three",
			item: domain.QuestionItem{Type: domain.TypeFreeText, Answers: []domain.AnswerPattern{
				{Text: "w"}, {Text: "x"}, {Text: "y"}, {Text: "z"},
			}},
			want: "w; x; y ...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, answerKey(tt.item))
		})
	}
}

func TestWriteArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "quiz.md")

	require.NoError(t, WriteArtifact(path, []byte("hello")))
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "hello", string(data))

	// Overwrite leaves exactly the new content behind.
	require.NoError(t, WriteArtifact(path, []byte("replaced")))
	data, readErr = os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "replaced", string(data))

	entries, readErr := os.ReadDir(filepath.Dir(path))
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "no temp files left behind")
}
