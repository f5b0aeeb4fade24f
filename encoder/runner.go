package encoder

import (
	"context"
	"fmt"
	"os/exec"

	"vidserve/logger"
)

// Runner executes the external encoder with a prepared argument list. The
// narrow interface keeps all process-spawning behind one seam so the
// orchestrator can be exercised with a fake.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// FFmpeg runs the ffmpeg binary as a blocking subprocess.
type FFmpeg struct {
	path string
}

// NewFFmpeg resolves the ffmpeg binary, failing fast when it is not in PATH.
func NewFFmpeg(path string) (*FFmpeg, error) {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("encoder command %q not found: %w", path, err)
	}
	logger.Debugf("encoder registered (command: %s)", resolved)
	return &FFmpeg{path: resolved}, nil
}

// Run invokes ffmpeg and blocks until it exits. A non-zero exit status is
// returned as an error carrying the combined process output.
func (f *FFmpeg) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, f.path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: %v: %s", err, string(out))
	}
	return nil
}
