package util

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	_, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewSeededULID(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, NewSeededULID(ts, 42), NewSeededULID(ts, 42))
	assert.NotEqual(t, NewSeededULID(ts, 1), NewSeededULID(ts, 2))
}
