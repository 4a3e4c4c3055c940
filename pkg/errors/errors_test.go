// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "list_not_found",
			code:    errors.ErrListNotFound,
			message: "app list not found",
			wantStr: "[LIST_NOT_FOUND] app list not found",
		},
		{
			name:    "unknown_distro",
			code:    errors.ErrUnknownDistro,
			message: "unsupported distribution",
			wantStr: "[UNKNOWN_DISTRO] unsupported distribution",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrPackageInstall, "failed to install %s via %s", "fzf", "brew")
	assert.Equal(t, "failed to install fzf via brew", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("exit status 1")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrBootstrapFailed, "homebrew bootstrap failed")

		assert.Equal(t, errors.ErrBootstrapFailed, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[BOOTSTRAP_FAILED] homebrew bootstrap failed: exit status 1", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrBackupWrite, "cannot back up").
		WithDetail("target", "/home/user/.zshrc").
		WithDetail("action", "moved-file")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "/home/user/.zshrc", details["target"])
	assert.Equal(t, "moved-file", details["action"])
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrGitUnavailable, "error 1")
	err2 := errors.New(errors.ErrGitUnavailable, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2), "same code should match")
	assert.False(t, err1.Is(err3), "different codes should not match")
	assert.True(t, stderrors.Is(err1, err2), "errors.Is should honour codes")
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrListNotFound, "not found"),
			code:     errors.ErrListNotFound,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrListNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "inner_code_of_chain",
			err:      errors.Wrap(errors.New(errors.ErrUnknownDistro, "unknown"), errors.ErrGitUnavailable, "git missing"),
			code:     errors.ErrUnknownDistro,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrBackupWrite, errors.GetErrorCode(errors.New(errors.ErrBackupWrite, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	cmdErr := errors.Wrap(rootCause, errors.ErrCommandFailed, "apt-get exited with code 100")
	gitErr := errors.Wrap(cmdErr, errors.ErrGitUnavailable, "could not install git")

	assert.Equal(t, errors.ErrGitUnavailable, errors.GetErrorCode(gitErr))
	assert.True(t, errors.IsErrorCode(gitErr, errors.ErrCommandFailed))
	assert.True(t, stderrors.Is(gitErr, rootCause))
}

func TestIsAndAsPassThrough(t *testing.T) {
	sentinel := stderrors.New("boom")
	err := errors.Wrap(sentinel, errors.ErrFileAccess, "wrapped")

	assert.True(t, errors.Is(err, sentinel))

	var target *errors.Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, errors.ErrFileAccess, target.Code)
}
