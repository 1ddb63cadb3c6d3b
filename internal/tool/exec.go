package tool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/valisebuild/valise/internal/log"
)

// RunContext executes a toolchain command in dir (or the working
// directory if dir is empty). On failure the command's stderr becomes
// the error message when available. A cancelled context is reported as
// the context's error, not the process kill.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := cmd.Run()
	done(time.Since(start))

	return wrapExecErr(ctx, err, &stderr)
}

// OutputContext is RunContext returning the command's stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	out, err := cmd.Output()
	done(time.Since(start))

	if err := wrapExecErr(ctx, err, &stderr); err != nil {
		return nil, err
	}
	return out, nil
}

// Check verifies that a required tool is installed and on PATH.
func Check(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("required tool not found: %s", name)
	}
	return nil
}

func wrapExecErr(ctx context.Context, err error, stderr *bytes.Buffer) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return err
}
