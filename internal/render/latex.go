package render

import (
	"fmt"
	"regexp"
	"strings"

	"quizbank/internal/domain"
)

// LaTeX renders a quiz as a compilable .tex source. Markdown in stems
// and choices gets a minimal normalization (bold, inline code, links);
// everything else is lightly escaped so the compiler survives. Full
// conversion belongs to the external toolchain, not here.
type LaTeX struct{}

func (LaTeX) Name() string { return "latex" }

var (
	mdBoldStar   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdBoldUscore = regexp.MustCompile(`__(.+?)__`)
	mdCode       = regexp.MustCompile("`([^`]+)`")
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

func (LaTeX) Render(def domain.QuizDefinition, items []domain.QuestionItem) ([]byte, error) {
	var out []string
	out = append(out,
		`\documentclass[11pt]{article}`,
		`\usepackage{iftex}`,
		`\ifPDFTeX`,
		`  \usepackage[T1]{fontenc}`,
		`  \usepackage[utf8]{inputenc}`,
		`  \usepackage{lmodern}`,
		`\else`,
		`  \usepackage{fontspec}`,
		`\fi`,
		`\usepackage[margin=1in]{geometry}`,
		`\usepackage{enumitem}`,
		`\usepackage{amsmath,amssymb}`,
		`\usepackage{graphicx}`,
		`\usepackage[hidelinks,hypertexnames=false]{hyperref}`,
		`\newcounter{qnum}`,
		`\setlist[enumerate]{itemsep=2pt,topsep=4pt}`,
		`\begin{document}`,
		`\begin{center}`,
		`\Large `+texText(title(def))+`\\[6pt]`,
		`\normalsize`,
		`\end{center}`,
	)
	if def.Instructions != "" {
		out = append(out, texText(def.Instructions)+`\\[6pt]`)
	}
	out = append(out, `\vspace{0.5\baselineskip}`)

	for n, item := range items {
		out = append(out, renderItemLaTeX(n+1, item))
	}

	out = append(out, `\clearpage`)
	out = append(out, `\section*{Answer Key}`)
	out = append(out, `\begin{enumerate}`)
	for _, item := range items {
		out = append(out, `\item \textbf{`+texText(answerKey(item))+`}`)
		if sol := strings.TrimSpace(item.Solution); sol != "" {
			out = append(out, `\begin{itemize}`)
			out = append(out, `\item \textit{Solution:} `+texText(sol))
			out = append(out, `\end{itemize}`)
		}
	}
	out = append(out, `\end{enumerate}`)
	out = append(out, `\end{document}`)

	return []byte(strings.Join(out, "\n")), nil
}

func renderItemLaTeX(n int, item domain.QuestionItem) string {
	var lines []string
	lines = append(lines, `\noindent\textbf{`+fmt.Sprintf("%d. (%s)", n, formatPoints(item.Points))+`}`)
	lines = append(lines, "")
	lines = append(lines, texText(item.Stem))
	lines = append(lines, "")

	switch item.Type {
	case domain.TypeSingleChoice, domain.TypeMultiChoice:
		lines = append(lines, `\refstepcounter{qnum}`)
		lines = append(lines, `\begin{enumerate}[label=\Alph*.]`)
		for _, c := range item.Choices {
			lines = append(lines, `\item `+texText(c.Text))
		}
		lines = append(lines, `\end{enumerate}`)
		lines = append(lines, "")
	case domain.TypeBoolean:
		lines = append(lines, `\refstepcounter{qnum}`)
		lines = append(lines, `\begin{enumerate}[label=\Alph*.]`)
		lines = append(lines, `\item True`)
		lines = append(lines, `\item False`)
		lines = append(lines, `\end{enumerate}`)
		lines = append(lines, "")
	case domain.TypeNumeric:
		lines = append(lines, `\emph{`+texText(numericHint(item))+`}`)
		lines = append(lines, "")
	case domain.TypeFreeText:
		lines = append(lines, `\emph{Answer: short text}`)
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// texText normalizes minimal Markdown to LaTeX and escapes the rest.
func texText(s string) string {
	s = strings.TrimRight(s, "\n")

	// Pull markdown spans out before escaping, substitute placeholders,
	// then re-insert the converted spans.
	type span struct{ replacement string }
	var spans []span
	placeholder := func(rep string) string {
		spans = append(spans, span{rep})
		return fmt.Sprintf("\x00%d\x00", len(spans)-1)
	}

	s = mdCode.ReplaceAllStringFunc(s, func(m string) string {
		inner := mdCode.FindStringSubmatch(m)[1]
		return placeholder(`\verb|` + inner + `|`)
	})
	s = mdLink.ReplaceAllStringFunc(s, func(m string) string {
		parts := mdLink.FindStringSubmatch(m)
		return placeholder(`\href{` + parts[2] + `}{` + texEscape(parts[1]) + `}`)
	})
	s = mdBoldStar.ReplaceAllStringFunc(s, func(m string) string {
		inner := mdBoldStar.FindStringSubmatch(m)[1]
		return placeholder(`\textbf{` + texEscape(inner) + `}`)
	})
	s = mdBoldUscore.ReplaceAllStringFunc(s, func(m string) string {
		inner := mdBoldUscore.FindStringSubmatch(m)[1]
		return placeholder(`\textbf{` + texEscape(inner) + `}`)
	})

	s = texEscape(s)

	for i, sp := range spans {
		s = strings.Replace(s, fmt.Sprintf("\x00%d\x00", i), sp.replacement, 1)
	}
	return s
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func texEscape(s string) string {
	return texEscaper.Replace(s)
}
