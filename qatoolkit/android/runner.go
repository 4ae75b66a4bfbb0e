package android

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spance/a11yqa-go/constants"
)

// CommandRunner runs one bridge tool invocation and returns its combined
// output. A non-nil error means the tool is missing or exited non-zero.
type CommandRunner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner runs the adb binary found at Path (or on PATH).
type ExecRunner struct {
	Path string
}

func NewExecRunner(path string) *ExecRunner {
	if path == "" {
		path = constants.ADB
	}
	return &ExecRunner{Path: path}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmdLine := fmt.Sprintf("%s %s", r.Path, strings.Join(args, " "))
	log.Debug().Str("cmd", fmt.Sprintf("[Run] run cmd: %s", cmdLine)).Msg("")

	rawOutput, err := exec.CommandContext(ctx, r.Path, args...).CombinedOutput()
	output := strings.TrimSpace(string(rawOutput))
	if err != nil {
		log.Error().Err(err).Str("cmd", cmdLine).Str("output", output).Msg("[Run] run cmd failed")
		return output, fmt.Errorf("%s: %w", cmdLine, err)
	}

	log.Debug().Str("output", output).Msg("[Run] raw output")
	return output, nil
}

// Available reports whether the adb binary can be resolved.
func (r *ExecRunner) Available() bool {
	_, err := exec.LookPath(r.Path)
	return err == nil
}
