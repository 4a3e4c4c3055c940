package testutil

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/runner"
)

// FakeRunner is a scripted runner.Runner. Commands succeed unless a failure
// or a RunFunc says otherwise; every Run call is recorded in Calls.
type FakeRunner struct {
	// Paths maps executable names to their resolved location
	Paths map[string]string
	// Failures maps a full command line to the error Run returns for it
	Failures map[string]error
	// Outputs maps a full command line to the stdout Run returns for it
	Outputs map[string]string
	// RunFunc, when set, replaces the scripted behaviour
	RunFunc func(cmd runner.Command) (runner.Result, error)

	Calls []runner.Command
}

// NewFakeRunner creates a FakeRunner with the given executables on PATH
func NewFakeRunner(onPath ...string) *FakeRunner {
	f := &FakeRunner{
		Paths:    make(map[string]string),
		Failures: make(map[string]error),
		Outputs:  make(map[string]string),
	}
	for _, name := range onPath {
		f.AddPath(name)
	}
	return f
}

// AddPath puts name on the fake command search path
func (f *FakeRunner) AddPath(name string) {
	f.Paths[name] = "/usr/bin/" + name
}

// RemovePath takes name off the fake command search path
func (f *FakeRunner) RemovePath(name string) {
	delete(f.Paths, name)
}

// Fail makes the exact command line fail
func (f *FakeRunner) Fail(cmdline string) {
	f.Failures[cmdline] = errors.Newf(errors.ErrCommandFailed, "%s exited with code 1", cmdline)
}

// Run records cmd and returns the scripted result
func (f *FakeRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	f.Calls = append(f.Calls, cmd)
	if f.RunFunc != nil {
		return f.RunFunc(cmd)
	}
	line := cmd.String()
	if err, ok := f.Failures[line]; ok {
		return runner.Result{ExitCode: 1}, err
	}
	return runner.Result{Stdout: f.Outputs[line]}, nil
}

// LookPath resolves name from Paths
func (f *FakeRunner) LookPath(name string) (string, error) {
	if path, ok := f.Paths[name]; ok {
		return path, nil
	}
	return "", errors.Newf(errors.ErrCommandNotFound, "%s not found on PATH", name)
}

// CallLines returns the recorded command lines in order
func (f *FakeRunner) CallLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}

// CallsContaining returns the recorded command lines that contain substr
func (f *FakeRunner) CallsContaining(substr string) []string {
	var lines []string
	for _, line := range f.CallLines() {
		if strings.Contains(line, substr) {
			lines = append(lines, line)
		}
	}
	return lines
}

var _ runner.Runner = (*FakeRunner)(nil)
