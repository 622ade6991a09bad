package render

import (
	"context"
	"path/filepath"
	"testing"

	"quizbank/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Success(t *testing.T) {
	artifact := filepath.Join(t.TempDir(), "quiz.tex")
	require.NoError(t, WriteArtifact(artifact, []byte("x")))

	assert.NoError(t, Compile(context.Background(), "true", artifact))
}

func TestCompile_ToolFailure(t *testing.T) {
	artifact := filepath.Join(t.TempDir(), "quiz.tex")
	require.NoError(t, WriteArtifact(artifact, []byte("x")))

	err := Compile(context.Background(), "false", artifact)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrExternalTool, domainErr.Code)
	assert.Contains(t, err.Error(), "false", "the failing tool must be named")
}

func TestCompile_ToolMissing(t *testing.T) {
	artifact := filepath.Join(t.TempDir(), "quiz.typ")
	require.NoError(t, WriteArtifact(artifact, []byte("x")))

	err := Compile(context.Background(), "no-such-compiler-on-path", artifact)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrExternalTool, domainErr.Code)
}
