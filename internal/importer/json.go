package importer

import (
	"bytes"
	"encoding/json"
	"os"

	"quizbank/internal/domain"
)

// JSON format: a single item object or an array of them, with the same
// field names as the bank YAML.

type jsonItem struct {
	ID             string                 `json:"id"`
	Version        int                    `json:"version"`
	Type           string                 `json:"type"`
	Points         float64                `json:"points"`
	Stem           string                 `json:"stem"`
	Topic          string                 `json:"topic"`
	Difficulty     string                 `json:"difficulty"`
	Tags           []string               `json:"tags"`
	Choices        []domain.Choice        `json:"choices"`
	ShuffleChoices *bool                  `json:"shuffle_choices"`
	Answer         any                    `json:"answer"`
	Answers        []domain.AnswerPattern `json:"answers"`
	Tolerance      *float64               `json:"tolerance"`
	Unit           string                 `json:"unit"`
	Feedback       *domain.Feedback       `json:"feedback"`
	Solution       string                 `json:"solution"`
	Author         string                 `json:"author"`
	License        string                 `json:"license"`
}

func ImportJSON(path string, opts Options) ([]domain.QuestionItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}

	var raw []jsonItem
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, domain.NewParseError(path, err)
		}
	} else {
		var one jsonItem
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, domain.NewParseError(path, err)
		}
		raw = []jsonItem{one}
	}

	items := make([]domain.QuestionItem, 0, len(raw))
	for _, j := range raw {
		t := domain.QuestionType(j.Type)
		if t == "" {
			t = domain.TypeSingleChoice
		}
		item := newItem(t, j.Stem, opts)
		item.ID = j.ID
		if j.Version > 0 {
			item.Version = j.Version
		}
		if j.Points > 0 {
			item.Points = j.Points
		}
		if j.Topic != "" {
			item.Topic = j.Topic
		}
		if j.Difficulty != "" {
			item.Difficulty = j.Difficulty
		}
		if len(j.Tags) > 0 {
			item.Tags = slugifyTags(j.Tags)
		}
		if j.Author != "" {
			item.Author = j.Author
		}
		if j.License != "" {
			item.License = j.License
		}
		item.Choices = j.Choices
		item.ShuffleChoices = j.ShuffleChoices
		item.Answer = j.Answer
		item.Answers = j.Answers
		item.Tolerance = j.Tolerance
		item.Unit = j.Unit
		item.Feedback = j.Feedback
		item.Solution = j.Solution
		items = append(items, item)
	}
	return items, nil
}
