package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"quizbank/internal/domain"
)

// Compile hands a finished artifact to an external compiler (latexmk,
// typst). The tool is opaque to the pipeline: a missing binary or a
// non-zero exit comes back under its own error code, naming the tool,
// so toolchain problems never masquerade as build failures. The tool
// runs in the artifact's directory so its outputs land next to it.
func Compile(ctx context.Context, tool, artifact string, args ...string) error {
	cmd := exec.CommandContext(ctx, tool, append(args, filepath.Base(artifact))...)
	cmd.Dir = filepath.Dir(artifact)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return domain.NewExternalToolError(tool, err)
	}
	return nil
}
