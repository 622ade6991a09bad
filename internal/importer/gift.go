package importer

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"quizbank/internal/domain"
)

// GIFT format: "stem {body}" blocks where the brace body encodes the
// variant — T/F for boolean, "#answer:tolerance" for numeric, all-"="
// entries for short answers, and "=" / "~" / "~%n%" entries for choices.

var (
	giftQuestionRe = regexp.MustCompile(`(?s)(.*?)\{(.*)\}\s*$`)
	giftBoolRe     = regexp.MustCompile(`^[tT](rue)?$|^[fF](alse)?$`)
	giftWeightRe   = regexp.MustCompile(`^%(-?\d+(?:\.\d+)?)%\s*`)
)

func ImportGIFT(path string, opts Options) ([]domain.QuestionItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}

	var items []domain.QuestionItem
	for _, block := range splitGIFTBlocks(string(data)) {
		if item, ok := parseGIFTBlock(block, opts); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// splitGIFTBlocks cuts the input at every top-level closing brace.
func splitGIFTBlocks(text string) []string {
	var out []string
	var buf strings.Builder
	depth := 0
	for _, ch := range text {
		buf.WriteRune(ch)
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				out = append(out, strings.TrimSpace(buf.String()))
				buf.Reset()
			}
		}
	}
	return out
}

func parseGIFTBlock(block string, opts Options) (domain.QuestionItem, bool) {
	m := giftQuestionRe.FindStringSubmatch(block)
	if m == nil {
		return domain.QuestionItem{}, false
	}
	stem := strings.TrimSpace(m[1])
	body := strings.TrimSpace(m[2])

	if giftBoolRe.MatchString(body) {
		item := newItem(domain.TypeBoolean, stem, opts)
		item.Answer = strings.HasPrefix(strings.ToLower(body), "t")
		return item, true
	}

	if strings.HasPrefix(body, "#") {
		parts := strings.SplitN(body[1:], ":", 2)
		ans, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return domain.QuestionItem{}, false
		}
		item := newItem(domain.TypeNumeric, stem, opts)
		item.Answer = ans
		if len(parts) == 2 && strings.TrimSpace(parts[1]) != "" {
			tol, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return domain.QuestionItem{}, false
			}
			item.Tolerance = &tol
		}
		return item, true
	}

	entries := giftEntries(body)

	// A body made entirely of "=" entries is a short-answer question.
	if !strings.Contains(body, "~") && strings.HasPrefix(body, "=") {
		var answers []domain.AnswerPattern
		for _, e := range entries {
			if txt := strings.TrimSpace(e[1:]); txt != "" {
				answers = append(answers, domain.AnswerPattern{Text: txt})
			}
		}
		if len(answers) > 0 {
			item := newItem(domain.TypeFreeText, stem, opts)
			item.Answers = answers
			return item, true
		}
	}

	var choices []domain.Choice
	correct := 0
	for _, e := range entries {
		text := strings.TrimSpace(e[1:])
		if text == "" {
			continue
		}
		if e[0] == '=' {
			choices = append(choices, domain.Choice{Text: text, Correct: true})
			correct++
		} else if w := giftWeightRe.FindString(text); w != "" {
			choices = append(choices, domain.Choice{Text: strings.TrimSpace(text[len(w):])})
		} else {
			choices = append(choices, domain.Choice{Text: text})
		}
	}
	if len(choices) == 0 {
		return domain.QuestionItem{}, false
	}
	t := domain.TypeSingleChoice
	if correct > 1 {
		t = domain.TypeMultiChoice
	}
	item := newItem(t, stem, opts)
	item.Choices = choices
	if opts.ShuffleChoices != nil {
		item.ShuffleChoices = opts.ShuffleChoices
	}
	return item, true
}

// giftEntries cuts the brace body into answer entries. Every entry
// starts at an unescaped '=' or '~' marker and keeps its marker.
func giftEntries(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if (s[i] == '=' || s[i] == '~') && (i == 0 || s[i-1] != '\\') {
			if start >= 0 {
				out = append(out, s[start:i])
			}
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}
