// Package runner executes external commands and probes the command search path.
//
// Every package-manager and git call in dotstrap goes through the Runner
// interface so tests can count and script subprocess invocations.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	derrors "github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/rs/zerolog"
)

// Command describes a single subprocess invocation
type Command struct {
	Name string
	Args []string
	// Env is added on top of the current process environment
	Env map[string]string
	Dir string
	// Stream forwards output to the terminal while it is captured
	Stream bool
}

// String renders the command line for logs and messages
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(parts, " ")
}

// Result holds the captured output of a finished command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs commands and resolves executables on the command search path
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	LookPath(name string) (string, error)
}

// ExecRunner is the os/exec backed Runner
type ExecRunner struct {
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// NewExecRunner creates a Runner that streams to the process stdio
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		logger: logging.GetLogger("runner"),
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
	}
}

// LookPath resolves name on the command search path
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", derrors.Wrapf(err, derrors.ErrCommandNotFound, "%s not found on PATH", name)
	}
	return path, nil
}

// Run executes cmd and blocks until it exits or ctx is cancelled
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	logging.LogCommand(r.logger, c.Name, c.Args)
	start := time.Now()

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), envPairs(c.Env)...)
	}

	var stdout, stderr bytes.Buffer
	if c.Stream {
		cmd.Stdin = r.stdin
		cmd.Stdout = io.MultiWriter(&stdout, r.stdout)
		cmd.Stderr = io.MultiWriter(&stderr, r.stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	if err != nil {
		r.logger.Debug().
			Err(err).
			Str("command", c.String()).
			Int("exitCode", result.ExitCode).
			Str("stderr", result.Stderr).
			Msg("Command failed")

		if errors.Is(err, exec.ErrNotFound) {
			return result, derrors.Wrapf(err, derrors.ErrCommandNotFound, "%s not found", c.Name)
		}
		return result, derrors.Wrapf(err, derrors.ErrCommandFailed, "%s exited with code %d", c.Name, result.ExitCode).
			WithDetail("command", c.String()).
			WithDetail("stderr", strings.TrimSpace(result.Stderr))
	}

	r.logger.Debug().
		Str("command", c.String()).
		Dur("duration", time.Since(start)).
		Msg("Command completed")

	return result, nil
}

// Exists reports whether name resolves on the command search path
func Exists(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}

func envPairs(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return pairs
}
