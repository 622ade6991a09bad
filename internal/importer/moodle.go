package importer

import (
	"encoding/xml"
	"os"
	"regexp"
	"strconv"
	"strings"

	"quizbank/internal/domain"
)

// Moodle XML quiz export. Only the four question types with a bank
// equivalent are imported (multichoice, truefalse, shortanswer,
// numerical); category and essay entries are skipped.

type moodleQuiz struct {
	XMLName   xml.Name         `xml:"quiz"`
	Questions []moodleQuestion `xml:"question"`
}

type moodleQuestion struct {
	Type         string         `xml:"type,attr"`
	Name         moodleText     `xml:"name"`
	QuestionText moodleText     `xml:"questiontext"`
	Single       string         `xml:"single"`
	Answers      []moodleAnswer `xml:"answer"`
}

type moodleText struct {
	Text string `xml:"text"`
}

type moodleAnswer struct {
	Fraction      string `xml:"fraction,attr"`
	FractionEl    string `xml:"fraction"`
	Text          string `xml:"text"`
	Tolerance     string `xml:"tolerance"`
	CaseSensitive string `xml:"casesensitive"`
}

func (a moodleAnswer) fraction() float64 {
	s := a.Fraction
	if s == "" {
		s = a.FractionEl
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

func ImportMoodleXML(path string, opts Options) ([]domain.QuestionItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	var quiz moodleQuiz
	if err := xml.Unmarshal(data, &quiz); err != nil {
		return nil, domain.NewParseError(path, err)
	}

	var items []domain.QuestionItem
	for _, q := range quiz.Questions {
		stem := stripHTML(q.QuestionText.Text)
		if stem == "" {
			continue
		}

		switch q.Type {
		case "multichoice":
			var choices []domain.Choice
			correct := 0
			for _, a := range q.Answers {
				text := stripHTML(a.Text)
				if text == "" {
					continue
				}
				c := domain.Choice{Text: text, Correct: a.fraction() > 0}
				if c.Correct {
					correct++
				}
				choices = append(choices, c)
			}
			if len(choices) == 0 {
				continue
			}
			t := domain.TypeMultiChoice
			if strings.TrimSpace(q.Single) == "true" || correct <= 1 {
				t = domain.TypeSingleChoice
			}
			item := newItem(t, stem, opts)
			item.Choices = choices
			items = append(items, item)

		case "truefalse":
			item := newItem(domain.TypeBoolean, stem, opts)
			for _, a := range q.Answers {
				if a.fraction() > 0 {
					item.Answer = strings.EqualFold(strings.TrimSpace(a.Text), "true")
					break
				}
			}
			if item.Answer == nil {
				item.Answer = false
			}
			items = append(items, item)

		case "shortanswer":
			var answers []domain.AnswerPattern
			for _, a := range q.Answers {
				text := strings.TrimSpace(a.Text)
				if text == "" {
					continue
				}
				score := a.fraction()
				if score > 1 {
					score = score / 100 // moodle fractions are percentages
				}
				answers = append(answers, domain.AnswerPattern{
					Text:          text,
					CaseSensitive: strings.TrimSpace(a.CaseSensitive) == "1",
					Score:         &score,
				})
			}
			if len(answers) == 0 {
				continue
			}
			item := newItem(domain.TypeFreeText, stem, opts)
			item.Answers = answers
			items = append(items, item)

		case "numerical":
			// Keep the highest-credit numeric answer.
			var best *moodleAnswer
			bestVal := 0.0
			for i := range q.Answers {
				a := q.Answers[i]
				v, err := strconv.ParseFloat(strings.TrimSpace(a.Text), 64)
				if err != nil {
					continue
				}
				if best == nil || a.fraction() > best.fraction() {
					best = &q.Answers[i]
					bestVal = v
				}
			}
			if best == nil {
				continue
			}
			item := newItem(domain.TypeNumeric, stem, opts)
			item.Answer = bestVal
			if tol := strings.TrimSpace(best.Tolerance); tol != "" {
				if v, err := strconv.ParseFloat(tol, 64); err == nil {
					item.Tolerance = &v
				}
			}
			items = append(items, item)
		}
	}
	return items, nil
}
