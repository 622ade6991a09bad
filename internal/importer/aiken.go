package importer

import (
	"os"
	"regexp"
	"strings"

	"quizbank/internal/domain"
)

// Aiken format: a stem line, choice lines "A. text", and an
// "ANSWER: X" line, blocks separated by blank lines. Blocks without a
// well-formed answer line are skipped.

var (
	aikenChoiceRe = regexp.MustCompile(`^[A-Z]\.\s+(.+)$`)
	aikenAnswerRe = regexp.MustCompile(`(?i)^ANSWER\s*:\s*([A-Z])\s*$`)
)

func ImportAiken(path string, opts Options) ([]domain.QuestionItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var items []domain.QuestionItem
	i := 0
	for i < len(lines) {
		for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
			i++
		}
		if i >= len(lines) {
			break
		}
		stem := strings.TrimSpace(lines[i])
		i++

		var choices []domain.Choice
		for i < len(lines) {
			m := aikenChoiceRe.FindStringSubmatch(lines[i])
			if m == nil {
				break
			}
			choices = append(choices, domain.Choice{Text: strings.TrimSpace(m[1])})
			i++
		}

		if i >= len(lines) || !aikenAnswerRe.MatchString(lines[i]) {
			// Malformed block: skip to the next blank-line boundary.
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			continue
		}
		letter := strings.ToUpper(aikenAnswerRe.FindStringSubmatch(lines[i])[1])
		i++

		idx := int(letter[0] - 'A')
		if idx >= 0 && idx < len(choices) {
			choices[idx].Correct = true
		}

		item := newItem(domain.TypeSingleChoice, stem, opts)
		item.Choices = choices
		if opts.ShuffleChoices != nil {
			item.ShuffleChoices = opts.ShuffleChoices
		}
		items = append(items, item)
	}
	return items, nil
}
