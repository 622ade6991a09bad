package qti

import (
	"encoding/xml"
	"fmt"

	"quizbank/internal/domain"
)

// QTI 2.1 assessmentItem model. One encoded item resource is produced
// per question; the variant-to-interaction mapping is total over the
// five question types (exhaustive switch in encodeItem).

const xmlnsItem = "http://www.imsglobal.org/xsd/imsqti_v2p1"

type assessmentItem struct {
	XMLName       xml.Name             `xml:"assessmentItem"`
	Xmlns         string               `xml:"xmlns,attr,omitempty"`
	Identifier    string               `xml:"identifier,attr"`
	Title         string               `xml:"title,attr"`
	Label         string               `xml:"label,attr,omitempty"`
	Adaptive      bool                 `xml:"adaptive,attr"`
	TimeDependent bool                 `xml:"timeDependent,attr"`
	ResponseDecl  *responseDeclaration `xml:"responseDeclaration,omitempty"`
	OutcomeDecl   outcomeDeclaration   `xml:"outcomeDeclaration"`
	Body          itemBody             `xml:"itemBody"`
	Feedback      []modalFeedback      `xml:"modalFeedback,omitempty"`
}

type responseDeclaration struct {
	Identifier  string           `xml:"identifier,attr"`
	Cardinality string           `xml:"cardinality,attr"`
	BaseType    string           `xml:"baseType,attr,omitempty"`
	Correct     *correctResponse `xml:"correctResponse,omitempty"`
	Mapping     *mapping         `xml:"mapping,omitempty"`
}

type correctResponse struct {
	Values []string `xml:"value"`
}

// mapping carries numeric tolerance bounds or free-text scoring entries.
type mapping struct {
	LowerBound   string     `xml:"lowerBound,attr,omitempty"`
	UpperBound   string     `xml:"upperBound,attr,omitempty"`
	DefaultValue string     `xml:"defaultValue,attr,omitempty"`
	Entries      []mapEntry `xml:"mapEntry,omitempty"`
}

type mapEntry struct {
	MapKey        string `xml:"mapKey,attr"`
	MappedValue   string `xml:"mappedValue,attr"`
	CaseSensitive bool   `xml:"caseSensitive,attr"`
}

type outcomeDeclaration struct {
	Identifier    string `xml:"identifier,attr"`
	Cardinality   string `xml:"cardinality,attr"`
	BaseType      string `xml:"baseType,attr"`
	NormalMaximum string `xml:"normalMaximum,attr,omitempty"`
}

type itemBody struct {
	Prompt            string                `xml:"div"`
	ChoiceInteraction *choiceInteraction    `xml:"choiceInteraction,omitempty"`
	TextEntry         *textEntryInteraction `xml:"textEntryInteraction,omitempty"`
}

type choiceInteraction struct {
	ResponseIdentifier string         `xml:"responseIdentifier,attr"`
	Shuffle            bool           `xml:"shuffle,attr"`
	MaxChoices         int            `xml:"maxChoices,attr"`
	Choices            []simpleChoice `xml:"simpleChoice"`
}

type simpleChoice struct {
	Identifier string `xml:"identifier,attr"`
	Text       string `xml:",chardata"`
}

type textEntryInteraction struct {
	ResponseIdentifier string `xml:"responseIdentifier,attr"`
	ExpectedLength     int    `xml:"expectedLength,attr,omitempty"`
}

type modalFeedback struct {
	Identifier        string `xml:"identifier,attr"`
	OutcomeIdentifier string `xml:"outcomeIdentifier,attr"`
	ShowHide          string `xml:"showHide,attr"`
	Text              string `xml:",chardata"`
}

// encodeItem maps one question onto its platform interaction type. The
// switch is total over the closed variant set; a variant falling through
// signals an internal defect, since validation already gated the input.
func encodeItem(ident string, q domain.QuestionItem) (assessmentItem, error) {
	item := assessmentItem{
		Xmlns:      xmlnsItem,
		Identifier: ident,
		Title:      itemTitle(q),
		Label:      q.ID,
		OutcomeDecl: outcomeDeclaration{
			Identifier:    "SCORE",
			Cardinality:   "single",
			BaseType:      "float",
			NormalMaximum: formatFloat(q.Points),
		},
		Body:     itemBody{Prompt: q.Stem},
		Feedback: feedbackBlocks(q),
	}

	switch q.Type {
	case domain.TypeSingleChoice:
		item.ResponseDecl, item.Body.ChoiceInteraction = encodeChoices(q, false)
	case domain.TypeMultiChoice:
		item.ResponseDecl, item.Body.ChoiceInteraction = encodeChoices(q, true)
	case domain.TypeBoolean:
		item.ResponseDecl, item.Body.ChoiceInteraction = encodeBoolean(q)
	case domain.TypeNumeric:
		item.ResponseDecl = encodeNumeric(q)
		item.Body.TextEntry = &textEntryInteraction{ResponseIdentifier: "RESPONSE", ExpectedLength: 16}
	case domain.TypeFreeText:
		item.ResponseDecl = encodeFreeText(q)
		item.Body.TextEntry = &textEntryInteraction{ResponseIdentifier: "RESPONSE"}
	default:
		return assessmentItem{}, domain.NewEncodingConsistencyError(q.Type)
	}

	return item, nil
}

// encodeChoices keeps the authored variant intact: a multi-choice item
// stays multiple-cardinality even when it happens to carry one choice,
// with maxChoices 0 (unlimited) per the QTI convention.
func encodeChoices(q domain.QuestionItem, multiple bool) (*responseDeclaration, *choiceInteraction) {
	cardinality := "single"
	maxChoices := 1
	if multiple {
		cardinality = "multiple"
		maxChoices = 0
	}
	shuffle := true
	if q.ShuffleChoices != nil {
		shuffle = *q.ShuffleChoices
	}

	interaction := &choiceInteraction{
		ResponseIdentifier: "RESPONSE",
		Shuffle:            shuffle,
		MaxChoices:         maxChoices,
	}
	var correct []string
	for i, c := range q.Choices {
		ident := choiceIdent(i)
		interaction.Choices = append(interaction.Choices, simpleChoice{Identifier: ident, Text: c.Text})
		if c.Correct {
			correct = append(correct, ident)
		}
	}
	decl := &responseDeclaration{
		Identifier:  "RESPONSE",
		Cardinality: cardinality,
		BaseType:    "identifier",
		Correct:     &correctResponse{Values: correct},
	}
	return decl, interaction
}

// encodeBoolean renders true/false as a one-of-two-choice interaction.
func encodeBoolean(q domain.QuestionItem) (*responseDeclaration, *choiceInteraction) {
	interaction := &choiceInteraction{
		ResponseIdentifier: "RESPONSE",
		Shuffle:            false,
		MaxChoices:         1,
		Choices: []simpleChoice{
			{Identifier: "A", Text: "True"},
			{Identifier: "B", Text: "False"},
		},
	}
	correct := "B"
	if q.BoolAnswer() {
		correct = "A"
	}
	decl := &responseDeclaration{
		Identifier:  "RESPONSE",
		Cardinality: "single",
		BaseType:    "identifier",
		Correct:     &correctResponse{Values: []string{correct}},
	}
	return decl, interaction
}

// encodeNumeric uses a float text entry; the tolerance travels as the
// mapping's lower/upper bounds around the correct value.
func encodeNumeric(q domain.QuestionItem) *responseDeclaration {
	ans := q.NumericAnswer()
	tol := q.NumericTolerance()
	return &responseDeclaration{
		Identifier:  "RESPONSE",
		Cardinality: "single",
		BaseType:    "float",
		Correct:     &correctResponse{Values: []string{formatFloat(ans)}},
		Mapping: &mapping{
			LowerBound:   formatFloat(ans - tol),
			UpperBound:   formatFloat(ans + tol),
			DefaultValue: "0",
		},
	}
}

// encodeFreeText maps accepted answers to scoring entries; regex entries
// keep their pattern text as the map key for platforms with
// pattern-matching support.
func encodeFreeText(q domain.QuestionItem) *responseDeclaration {
	var correct []string
	var entries []mapEntry
	for _, a := range q.Answers {
		score := 1.0
		if a.Score != nil {
			score = *a.Score
		}
		if !a.Regex && score == 1 {
			correct = append(correct, a.Text)
		}
		entries = append(entries, mapEntry{
			MapKey:        a.Text,
			MappedValue:   formatFloat(score * q.Points),
			CaseSensitive: a.CaseSensitive,
		})
	}
	return &responseDeclaration{
		Identifier:  "RESPONSE",
		Cardinality: "single",
		BaseType:    "string",
		Correct:     &correctResponse{Values: correct},
		Mapping:     &mapping{DefaultValue: "0", Entries: entries},
	}
}

func feedbackBlocks(q domain.QuestionItem) []modalFeedback {
	var out []modalFeedback
	if q.Feedback != nil && q.Feedback.Correct != "" {
		out = append(out, modalFeedback{
			Identifier: "correct_fb", OutcomeIdentifier: "FEEDBACK", ShowHide: "show",
			Text: q.Feedback.Correct,
		})
	}
	if q.Feedback != nil && q.Feedback.Incorrect != "" {
		out = append(out, modalFeedback{
			Identifier: "incorrect_fb", OutcomeIdentifier: "FEEDBACK", ShowHide: "show",
			Text: q.Feedback.Incorrect,
		})
	}
	if q.Solution != "" {
		out = append(out, modalFeedback{
			Identifier: "solution_fb", OutcomeIdentifier: "FEEDBACK", ShowHide: "show",
			Text: q.Solution,
		})
	}
	return out
}

func itemTitle(q domain.QuestionItem) string {
	if q.Topic != "" {
		return q.Topic
	}
	return q.ID
}

// choiceIdent labels choices A, B, ... Z, AA, AB, ...
func choiceIdent(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%s%s", choiceIdent(i/26-1), choiceIdent(i%26))
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
