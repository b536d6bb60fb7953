package launch

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// CommandRunner runs argv and returns what it wrote to stdout and stderr.
// A non-nil error means the command could not be started or exited non-zero.
type CommandRunner interface {
	Run(ctx context.Context, argv []string) (stdout, stderr string, err error)
}

// ExecRunner runs commands as local subprocesses.
type ExecRunner struct {
	// Env is appended to the current environment when non-empty.
	Env []string
}

func (r ExecRunner) Run(ctx context.Context, argv []string) (string, string, error) {
	if len(argv) == 0 {
		return "", "", errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// StderrPolicy decides what a Command does with output on stderr.
type StderrPolicy string

const (
	StderrFail    StderrPolicy = "fail"
	StderrWarn    StderrPolicy = "warn"
	StderrIgnore  StderrPolicy = "ignore"
	StderrCapture StderrPolicy = "capture"
)

// Command runs the concatenation of Parts as a shell-split command line and
// substitutes its stdout. The zero OnStderr behaves as StderrFail.
type Command struct {
	Parts    []Substitution
	OnStderr StderrPolicy
}

func (c Command) Perform(ctx context.Context, lc *Context) (string, error) {
	line, err := performAll(ctx, lc, c.Parts)
	if err != nil {
		return "", err
	}
	argv, err := shlex.Split(line)
	if err != nil {
		return "", errors.Wrapf(ErrCommandFailed, "cannot split %q: %v", line, err)
	}
	if len(argv) == 0 {
		return "", errors.Wrap(ErrCommandFailed, "command line is empty")
	}
	if lc.Runner() == nil {
		return "", errors.Wrap(ErrCommandFailed, "no command runner configured")
	}

	lc.Logger().Debugw("running command substitution", "argv", argv)
	stdout, stderr, err := lc.Runner().Run(ctx, argv)
	if err != nil {
		return "", errors.Wrapf(ErrCommandFailed, "%q: %v: %s", line, err, strings.TrimSpace(stderr))
	}

	if stderr != "" {
		switch c.OnStderr {
		case StderrIgnore:
		case StderrWarn:
			lc.Logger().Warnw("command wrote to stderr", "command", line, "stderr", strings.TrimSpace(stderr))
		case StderrCapture:
			stdout += stderr
		default:
			return "", errors.Wrapf(ErrCommandFailed, "%q wrote to stderr: %s", line, strings.TrimSpace(stderr))
		}
	}
	return stdout, nil
}

func (c Command) String() string {
	return "$(command " + Concat(c.Parts).String() + ")"
}
