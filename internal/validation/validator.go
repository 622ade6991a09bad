package validation

import (
	"fmt"
	"regexp"

	"quizbank/internal/domain"
)

// Item ids are lowercase letters, digits, dot, underscore, hyphen.
var validItemID = regexp.MustCompile(`^[a-z0-9._-]+$`)

// ValidateItem checks one question record against the structural rules
// and the semantic rules of its variant. It is exhaustive: every
// violation in the record is collected, not just the first, so authors
// see all problems in one pass. A nil/empty result means the record is
// valid. Validation never mutates the record and is idempotent.
func ValidateItem(item domain.QuestionItem) domain.ValidationErrors {
	var errs domain.ValidationErrors

	// Structural rules, applied to every record.
	if item.ID == "" {
		errs = append(errs, domain.NewMissingFieldError("id"))
	} else if !validItemID.MatchString(item.ID) {
		errs = append(errs, domain.NewInvalidFormatError("id", item.ID))
	}
	if item.Version < 1 {
		errs = append(errs, domain.NewFieldError("version", "must be a positive integer"))
	}
	if item.Type == "" {
		errs = append(errs, domain.NewMissingFieldError("type"))
	} else if !domain.IsValidQuestionType(item.Type) {
		errs = append(errs, domain.NewInvalidFormatError("type", string(item.Type)))
	}
	if item.Points < 0 {
		errs = append(errs, domain.NewFieldError("points", "must be a non-negative number"))
	}
	if item.Stem == "" {
		errs = append(errs, domain.NewMissingFieldError("stem"))
	}

	// Semantic rules are variant-dependent; skip them for unknown types
	// since there is no variant contract to check against.
	switch item.Type {
	case domain.TypeSingleChoice:
		errs = append(errs, validateChoices(item, true)...)
		errs = append(errs, rejectFields(item, "answer", "answers", "tolerance", "unit")...)
	case domain.TypeMultiChoice:
		errs = append(errs, validateChoices(item, false)...)
		errs = append(errs, rejectFields(item, "answer", "answers", "tolerance", "unit")...)
	case domain.TypeBoolean:
		errs = append(errs, validateBoolean(item)...)
		errs = append(errs, rejectFields(item, "choices", "answers", "tolerance", "unit")...)
	case domain.TypeNumeric:
		errs = append(errs, validateNumeric(item)...)
		errs = append(errs, rejectFields(item, "choices", "answers")...)
	case domain.TypeFreeText:
		errs = append(errs, validateFreeText(item)...)
		errs = append(errs, rejectFields(item, "choices", "answer", "tolerance", "unit")...)
	}

	return errs
}

func validateChoices(item domain.QuestionItem, exactlyOne bool) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if len(item.Choices) == 0 {
		errs = append(errs, domain.NewFieldError("choices", "must be a non-empty list"))
		return errs
	}
	correct := 0
	for i, c := range item.Choices {
		if c.Text == "" {
			errs = append(errs, domain.NewFieldError(fmt.Sprintf("choices[%d].text", i), "must be a non-empty string"))
		}
		if c.Correct {
			correct++
		}
	}
	if exactlyOne && correct != 1 {
		errs = append(errs, domain.NewFieldError("choices",
			fmt.Sprintf("single-choice requires exactly one correct choice, found %d", correct)))
	}
	if !exactlyOne && correct < 1 {
		errs = append(errs, domain.NewFieldError("choices", "multi-choice requires at least one correct choice"))
	}
	return errs
}

func validateBoolean(item domain.QuestionItem) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if item.Answer == nil {
		errs = append(errs, domain.NewMissingFieldError("answer"))
	} else if _, ok := item.Answer.(bool); !ok {
		errs = append(errs, domain.NewFieldError("answer", "must be a boolean"))
	}
	return errs
}

func validateNumeric(item domain.QuestionItem) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if item.Answer == nil {
		errs = append(errs, domain.NewMissingFieldError("answer"))
	} else {
		switch item.Answer.(type) {
		case int, float64:
		default:
			errs = append(errs, domain.NewFieldError("answer", "must be a number"))
		}
	}
	if item.Tolerance != nil && *item.Tolerance < 0 {
		errs = append(errs, domain.NewFieldError("tolerance", "must be a non-negative number"))
	}
	return errs
}

func validateFreeText(item domain.QuestionItem) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if len(item.Answers) == 0 {
		errs = append(errs, domain.NewFieldError("answers", "must be a non-empty list"))
		return errs
	}
	canonical := false
	for i, a := range item.Answers {
		if a.Text == "" {
			errs = append(errs, domain.NewFieldError(fmt.Sprintf("answers[%d].text", i), "must be a non-empty string"))
			continue
		}
		if a.Score != nil && (*a.Score < 0 || *a.Score > 1) {
			errs = append(errs, domain.NewFieldError(fmt.Sprintf("answers[%d].score", i), "must be between 0 and 1"))
		}
		// A literal (non-regex) full-credit entry can serve as the
		// canonical correct answer shown in answer keys.
		if !a.Regex && (a.Score == nil || *a.Score == 1) {
			canonical = true
		}
	}
	if !canonical {
		errs = append(errs, domain.NewFieldError("answers", "at least one entry must be usable as a canonical correct answer"))
	}
	return errs
}

// rejectFields flags payload fields that belong to another variant. The
// payload shape is determined by type; nothing is silently accepted.
func rejectFields(item domain.QuestionItem, fields ...string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	for _, f := range fields {
		present := false
		switch f {
		case "choices":
			present = len(item.Choices) > 0
		case "answer":
			present = item.Answer != nil
		case "answers":
			present = len(item.Answers) > 0
		case "tolerance":
			present = item.Tolerance != nil
		case "unit":
			present = item.Unit != ""
		}
		if present {
			errs = append(errs, domain.NewFieldError(f,
				fmt.Sprintf("not allowed for type %q", item.Type)))
		}
	}
	return errs
}
