package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"quizbank/internal/domain"
)

// CSV format: one row per item with header-named columns (stem, type,
// points, choiceA..choiceE, correct, answer, tolerance, unit, answers,
// feedback_correct, feedback_incorrect, solution, ...). Options.CSVMap
// renames columns when the source uses different headers.

var csvChoiceLetters = []string{"A", "B", "C", "D", "E"}

func ImportCSV(path string, opts Options) ([]domain.QuestionItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	if len(header) > 0 {
		// Strip a UTF-8 BOM from exports that carry one.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	col := func(row []string, key string) string {
		name := key
		if mapped, ok := opts.CSVMap[key]; ok {
			name = mapped
		}
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []domain.QuestionItem
	for _, row := range rows[1:] {
		stem := col(row, "stem")
		if stem == "" {
			continue
		}
		t := domain.QuestionType(strings.ToLower(col(row, "type")))
		if t == "" {
			t = domain.TypeSingleChoice
		}

		item := newItem(t, stem, opts)
		item.ID = col(row, "id")
		if topic := col(row, "topic"); topic != "" {
			item.Topic = topic
		}
		if diff := col(row, "difficulty"); diff != "" {
			item.Difficulty = diff
		}
		if tags := col(row, "tags"); tags != "" {
			item.Tags = slugifyTags(strings.FieldsFunc(tags, func(r rune) bool {
				return r == ',' || r == ' '
			}))
		}
		if pts := col(row, "points"); pts != "" {
			p, err := strconv.ParseFloat(pts, 64)
			if err != nil {
				return nil, domain.NewParseError(path, fmt.Errorf("bad points %q", pts))
			}
			item.Points = p
		}

		switch t {
		case domain.TypeSingleChoice, domain.TypeMultiChoice:
			correct := parseLetters(col(row, "correct"))
			for i, letter := range csvChoiceLetters {
				txt := col(row, "choice"+letter)
				if txt == "" {
					continue
				}
				item.Choices = append(item.Choices, domain.Choice{
					Text:    txt,
					Correct: correct[choiceLetterAt(i)],
				})
			}
			if len(item.Choices) == 0 {
				continue
			}
			if opts.ShuffleChoices != nil {
				item.ShuffleChoices = opts.ShuffleChoices
			}
		case domain.TypeBoolean:
			ans := col(row, "answer")
			if ans == "" {
				ans = col(row, "correct")
			}
			item.Answer = toBool(ans)
		case domain.TypeNumeric:
			ans, err := strconv.ParseFloat(col(row, "answer"), 64)
			if err != nil {
				return nil, domain.NewParseError(path, fmt.Errorf("bad numeric answer %q", col(row, "answer")))
			}
			item.Answer = ans
			if tol := col(row, "tolerance"); tol != "" {
				v, err := strconv.ParseFloat(tol, 64)
				if err != nil {
					return nil, domain.NewParseError(path, fmt.Errorf("bad tolerance %q", tol))
				}
				item.Tolerance = &v
			}
			item.Unit = col(row, "unit")
		case domain.TypeFreeText:
			raw := col(row, "answers")
			if raw == "" {
				continue
			}
			if err := json.Unmarshal([]byte(raw), &item.Answers); err != nil {
				return nil, domain.NewParseError(path, fmt.Errorf("answers column must be JSON: %w", err))
			}
		default:
			continue
		}

		fc := col(row, "feedback_correct")
		fi := col(row, "feedback_incorrect")
		if fc != "" || fi != "" {
			item.Feedback = &domain.Feedback{Correct: fc, Incorrect: fi}
		}
		item.Solution = col(row, "solution")

		items = append(items, item)
	}
	return items, nil
}

func parseLetters(s string) map[string]bool {
	out := make(map[string]bool)
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	}) {
		out[strings.ToUpper(strings.TrimSpace(part))] = true
	}
	return out
}

func choiceLetterAt(i int) string {
	return string(rune('A' + i))
}
