package bank

import (
	"os"
	"path/filepath"
	"testing"

	"quizbank/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemYAML = `id: alg.slope.001
version: 1
type: single-choice
points: 2
stem: "What is the slope of y = 3x + 1?"
choices:
  - text: "3"
    correct: true
  - text: "1"
topic: Algebra
tags: [slope, lines]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadItemFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q-slope-001.yaml", itemYAML)

	item, loadErrs, err := LoadItemFile(path)
	require.NoError(t, err)
	assert.Empty(t, loadErrs)
	assert.Equal(t, "alg.slope.001", item.ID)
	assert.Equal(t, domain.TypeSingleChoice, item.Type)
	assert.Equal(t, 2.0, item.Points)
	require.Len(t, item.Choices, 2)
	assert.True(t, item.Choices[0].Correct)
	assert.Equal(t, []string{"slope", "lines"}, item.Tags)
}

func TestLoadItemFile_UnknownFieldIsRecordViolation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q-bad.yaml", itemYAML+"grading_hints: none\n")

	item, loadErrs, err := LoadItemFile(path)
	require.NoError(t, err, "an unknown field is a record problem, not a parse failure")
	require.NotEmpty(t, loadErrs)
	assert.Contains(t, loadErrs.Error(), "grading_hints")
	assert.Equal(t, "alg.slope.001", item.ID, "decodable fields still load")
}

func TestLoadItemFile_WrongTypedFieldIsRecordViolation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q-bad.yaml", `id: alg.slope.002
version: 1
type: single-choice
points: "two"
stem: "Slope?"
choices:
  - text: "3"
    correct: true
`)

	item, loadErrs, err := LoadItemFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, loadErrs)
	assert.Contains(t, loadErrs.Error(), "two")
	assert.Equal(t, "alg.slope.002", item.ID)
}

func TestLoadItemFile_BrokenYAMLIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q-broken.yaml", "id: [unclosed\n")

	_, _, err := LoadItemFile(path)
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrParse, domainErr.Code)
}

func TestLoadItemFile_RejectsMultipleDocuments(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "q-multi.yaml", itemYAML+"---\nid: another\n")

	_, _, err := LoadItemFile(path)
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrParse, domainErr.Code)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "algebra/q-slope-001.yaml", itemYAML)
	writeFile(t, dir, "history/q-wall-001.yml", `id: hist.wall.001
version: 1
type: boolean
points: 1
stem: "The Berlin Wall fell in 1989."
answer: true
`)
	writeFile(t, dir, "README.md", "# not an item")

	records, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Load order is lexical by path, so algebra sorts before history.
	assert.Equal(t, "alg.slope.001", records[0].Item.ID)
	assert.Equal(t, "hist.wall.001", records[1].Item.ID)
	assert.Equal(t, filepath.Join(dir, "algebra/q-slope-001.yaml"), records[0].Source)
}

func TestLoadDir_WrongTypedRecordDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", `id: alg.bad.001
version: 1
type: numeric
points: "two"
stem: "How many?"
answer: 2
`)
	writeFile(t, dir, "b.yaml", `id: alg.bad.002
version: 1
type: boolean
points: 1
stem: ""
answer: true
`)

	records, err := LoadDir(dir)
	require.NoError(t, err, "one wrong-typed record must not abort the load")
	require.Len(t, records, 2, "the rest of the bank still loads")

	assert.NotEmpty(t, records[0].LoadErrors)
	assert.Contains(t, records[0].LoadErrors.Error(), "two")
	assert.Empty(t, records[1].LoadErrors)
	assert.Equal(t, "alg.bad.002", records[1].Item.ID)
}

func TestLoadQuizFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quiz-week1.yaml", `id: quiz.week1
title: Week 1 Check
shuffle_questions: true
pick: 2
items:
  - alg.slope.001
  - alg.slope.param.001.*
`)

	def, err := LoadQuizFile(path)
	require.NoError(t, err)
	assert.Equal(t, "quiz.week1", def.ID)
	assert.True(t, def.ShuffleQuestions)
	require.NotNil(t, def.Pick)
	assert.Equal(t, 2, *def.Pick)
	assert.Equal(t, []string{"alg.slope.001", "alg.slope.param.001.*"}, def.Items)
}
