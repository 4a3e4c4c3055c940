package testutil

import (
	"context"

	"github.com/arthur-debert/dotstrap/pkg/runner"
	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock of runner.Runner, for tests that assert on
// exact expectations rather than scripted behaviour
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(runner.Result), args.Error(1)
}

func (m *MockRunner) LookPath(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

var _ runner.Runner = (*MockRunner)(nil)
