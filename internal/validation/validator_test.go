package validation

import (
	"context"
	"testing"

	"quizbank/internal/bank"
	"quizbank/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSingleChoice() domain.QuestionItem {
	return domain.QuestionItem{
		ID:      "alg.slope.001",
		Version: 1,
		Type:    domain.TypeSingleChoice,
		Points:  2,
		Stem:    "What is the slope of y = 3x + 1?",
		Choices: []domain.Choice{
			{Text: "3", Correct: true},
			{Text: "1"},
			{Text: "-3"},
		},
	}
}

func validNumeric() domain.QuestionItem {
	tol := 0.1
	return domain.QuestionItem{
		ID:        "phys.kinematics.004",
		Version:   2,
		Type:      domain.TypeNumeric,
		Points:    1,
		Stem:      "A ball falls for 2 s. How far does it travel?",
		Answer:    19.6,
		Tolerance: &tol,
		Unit:      "m",
	}
}

func TestValidateItem_Structural(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.QuestionItem)
		field  string
	}{
		{"missing id", func(q *domain.QuestionItem) { q.ID = "" }, "id"},
		{"uppercase id", func(q *domain.QuestionItem) { q.ID = "Alg.Slope.001" }, "id"},
		{"id with space", func(q *domain.QuestionItem) { q.ID = "alg slope" }, "id"},
		{"zero version", func(q *domain.QuestionItem) { q.Version = 0 }, "version"},
		{"negative points", func(q *domain.QuestionItem) { q.Points = -1 }, "points"},
		{"empty stem", func(q *domain.QuestionItem) { q.Stem = "" }, "stem"},
		{"unknown type", func(q *domain.QuestionItem) { q.Type = "essay" }, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validSingleChoice()
			tt.mutate(&item)
			errs := ValidateItem(item)
			require.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected a violation on field %q, got %v", tt.field, errs)
		})
	}
}

func TestValidateItem_ValidItems(t *testing.T) {
	score := 1.0
	items := []domain.QuestionItem{
		validSingleChoice(),
		validNumeric(),
		{
			ID: "hist.dates.002", Version: 1, Type: domain.TypeBoolean,
			Points: 1, Stem: "The Berlin Wall fell in 1989.", Answer: true,
		},
		{
			ID: "cs.sorting.010", Version: 3, Type: domain.TypeMultiChoice,
			Points: 2, Stem: "Which of these sorts are stable?",
			Choices: []domain.Choice{
				{Text: "Merge sort", Correct: true},
				{Text: "Insertion sort", Correct: true},
				{Text: "Heap sort"},
			},
		},
		{
			ID: "geo.capitals.003", Version: 1, Type: domain.TypeFreeText,
			Points: 1, Stem: "Name the capital of France.",
			Answers: []domain.AnswerPattern{
				{Text: "Paris", Score: &score},
				{Text: "paris?", Regex: true},
			},
		},
	}
	for _, item := range items {
		assert.Empty(t, ValidateItem(item), "item %s should be valid", item.ID)
	}
}

func TestValidateItem_SingleChoiceExactlyOneCorrect(t *testing.T) {
	item := validSingleChoice()
	item.Choices[1].Correct = true
	errs := ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "exactly one correct")

	item = validSingleChoice()
	for i := range item.Choices {
		item.Choices[i].Correct = false
	}
	errs = ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "exactly one correct")
}

func TestValidateItem_MultiChoiceAtLeastOneCorrect(t *testing.T) {
	item := domain.QuestionItem{
		ID: "cs.sorting.011", Version: 1, Type: domain.TypeMultiChoice,
		Points: 1, Stem: "Pick all primes.",
		Choices: []domain.Choice{{Text: "4"}, {Text: "6"}},
	}
	errs := ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "at least one correct")
}

func TestValidateItem_BooleanAnswer(t *testing.T) {
	item := domain.QuestionItem{
		ID: "hist.dates.004", Version: 1, Type: domain.TypeBoolean,
		Points: 1, Stem: "Water boils at 100 C at sea level.",
	}
	errs := ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Equal(t, "answer", errs[0].Field)

	item.Answer = "yes"
	errs = ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "must be a boolean")
}

func TestValidateItem_NumericRules(t *testing.T) {
	item := validNumeric()
	neg := -0.5
	item.Tolerance = &neg
	errs := ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "tolerance")

	item = validNumeric()
	item.Answer = "fast"
	errs = ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "must be a number")
}

func TestValidateItem_FreeTextCanonicalAnswer(t *testing.T) {
	item := domain.QuestionItem{
		ID: "geo.capitals.009", Version: 1, Type: domain.TypeFreeText,
		Points: 1, Stem: "Name any EU capital.",
		Answers: []domain.AnswerPattern{
			{Text: "par.s", Regex: true},
		},
	}
	errs := ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "canonical correct answer")
}

func TestValidateItem_RejectsForeignPayloadFields(t *testing.T) {
	item := validSingleChoice()
	item.Answer = true // boolean payload on a single-choice item
	errs := ValidateItem(item)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `not allowed for type "single-choice"`)

	boolItem := domain.QuestionItem{
		ID: "hist.dates.005", Version: 1, Type: domain.TypeBoolean,
		Points: 1, Stem: "True or false?", Answer: false,
		Choices: []domain.Choice{{Text: "stray"}},
	}
	errs = ValidateItem(boolItem)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "choices")
}

func TestValidateItem_CollectsAllViolations(t *testing.T) {
	item := domain.QuestionItem{
		ID:     "BAD ID",
		Type:   domain.TypeSingleChoice,
		Points: -2,
	}
	errs := ValidateItem(item)
	// id format, version, points, stem, empty choices: all in one pass.
	assert.GreaterOrEqual(t, len(errs), 5)
}

func TestValidateItem_Idempotent(t *testing.T) {
	item := validSingleChoice()
	first := ValidateItem(item)
	second := ValidateItem(item)
	assert.Empty(t, first)
	assert.Equal(t, first, second)
}

func TestValidateBatch(t *testing.T) {
	bad := validSingleChoice()
	bad.ID = "alg.slope.002"
	bad.Stem = ""
	records := []bank.Record{
		{Item: validSingleChoice(), Source: "qbank/a.yaml"},
		{Item: bad, Source: "qbank/b.yaml"},
		{Item: validNumeric(), Source: "qbank/c.yaml"},
	}

	result := ValidateBatch(context.Background(), records)
	require.Len(t, result.Results, 3)
	assert.False(t, result.OK())
	assert.Equal(t, 1, result.InvalidCount())

	invalid := result.Invalid()
	require.Len(t, invalid, 1)
	assert.Equal(t, "qbank/b.yaml", invalid[0].Source)

	// Results preserve input order regardless of worker scheduling.
	assert.Equal(t, "qbank/a.yaml", result.Results[0].Source)
	assert.Equal(t, "qbank/c.yaml", result.Results[2].Source)
}

func TestValidateBatch_AggregatesLoadErrors(t *testing.T) {
	badStem := validSingleChoice()
	badStem.ID = "alg.slope.002"
	badStem.Stem = ""
	wrongTyped := validNumeric()
	wrongTyped.Points = 0 // the decoder could not fill it
	records := []bank.Record{
		{
			Item:       wrongTyped,
			Source:     "qbank/a.yaml",
			LoadErrors: domain.ValidationErrors{domain.NewFieldError("", "line 4: cannot unmarshal !!str `two` into float64")},
		},
		{Item: badStem, Source: "qbank/b.yaml"},
	}

	result := ValidateBatch(context.Background(), records)
	require.Len(t, result.Results, 2)
	assert.Equal(t, 2, result.InvalidCount(),
		"a record that failed to decode must not hide violations in other records")

	first := result.Results[0]
	require.NotEmpty(t, first.Errors)
	assert.Contains(t, first.Errors[0].Message, "cannot unmarshal",
		"decode problems come first in the record's violation list")
	assert.Contains(t, result.Results[1].Errors.Error(), "stem")
}
