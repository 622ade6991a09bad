package domain

// QuestionType identifies one of the closed set of item variants.
type QuestionType string

const (
	TypeSingleChoice QuestionType = "single-choice"
	TypeMultiChoice  QuestionType = "multi-choice"
	TypeBoolean      QuestionType = "boolean"
	TypeNumeric      QuestionType = "numeric"
	TypeFreeText     QuestionType = "free-text"
)

// QuestionTypes lists every recognized variant.
var QuestionTypes = []QuestionType{
	TypeSingleChoice,
	TypeMultiChoice,
	TypeBoolean,
	TypeNumeric,
	TypeFreeText,
}

// IsValidQuestionType reports whether t is a recognized variant.
func IsValidQuestionType(t QuestionType) bool {
	for _, qt := range QuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

// Choice is one option of a single-choice or multi-choice item.
type Choice struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct,omitempty"`
}

// AnswerPattern is one accepted answer of a free-text item.
type AnswerPattern struct {
	Text          string   `yaml:"text"`
	Regex         bool     `yaml:"regex,omitempty"`
	CaseSensitive bool     `yaml:"case_sensitive,omitempty"`
	Score         *float64 `yaml:"score,omitempty"`
}

// Feedback holds author-supplied comments shown on correct/incorrect responses.
type Feedback struct {
	Correct   string `yaml:"correct,omitempty"`
	Incorrect string `yaml:"incorrect,omitempty"`
}

// QuestionItem is the atomic unit of the bank: one question record,
// authored as a single YAML file. The payload fields below the metadata
// block are variant-dependent; the validator enforces which ones a given
// type may carry.
type QuestionItem struct {
	ID      string       `yaml:"id"`
	Version int          `yaml:"version"`
	Type    QuestionType `yaml:"type"`
	Points  float64      `yaml:"points"`
	Stem    string       `yaml:"stem"`

	// single-choice / multi-choice
	Choices        []Choice `yaml:"choices,omitempty"`
	ShuffleChoices *bool    `yaml:"shuffle_choices,omitempty"`

	// boolean / numeric
	Answer    any      `yaml:"answer,omitempty"`
	Tolerance *float64 `yaml:"tolerance,omitempty"`
	Unit      string   `yaml:"unit,omitempty"`

	// free-text
	Answers []AnswerPattern `yaml:"answers,omitempty"`

	// optional metadata
	Topic       string    `yaml:"topic,omitempty"`
	Outcomes    []string  `yaml:"outcomes,omitempty"`
	Difficulty  string    `yaml:"difficulty,omitempty"`
	Tags        []string  `yaml:"tags,omitempty"`
	Attachments []string  `yaml:"attachments,omitempty"`
	Feedback    *Feedback `yaml:"feedback,omitempty"`
	Solution    string    `yaml:"solution,omitempty"`
	Author      string    `yaml:"author,omitempty"`
	License     string    `yaml:"license,omitempty"`
}

// BoolAnswer returns the boolean answer of a boolean item.
// Only meaningful after validation has passed.
func (q *QuestionItem) BoolAnswer() bool {
	b, _ := q.Answer.(bool)
	return b
}

// NumericAnswer returns the numeric answer of a numeric item.
// Only meaningful after validation has passed.
func (q *QuestionItem) NumericAnswer() float64 {
	switch v := q.Answer.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// NumericTolerance returns the tolerance of a numeric item, defaulting to 0.
func (q *QuestionItem) NumericTolerance() float64 {
	if q.Tolerance == nil {
		return 0
	}
	return *q.Tolerance
}

// CorrectChoices returns the indices of choices marked correct.
func (q *QuestionItem) CorrectChoices() []int {
	var idx []int
	for i, c := range q.Choices {
		if c.Correct {
			idx = append(idx, i)
		}
	}
	return idx
}
