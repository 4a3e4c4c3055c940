package packagemanager

import (
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModes(t *testing.T) {
	assert.Equal(t, []string{"brew", "miniforge"}, Modes())
}

func TestNew(t *testing.T) {
	deps := brewDeps(t, testutil.NewFakeRunner())

	brew, err := New(environment.ModeBrew, deps)
	require.NoError(t, err)
	assert.IsType(t, &Homebrew{}, brew)
	assert.Equal(t, "brew", brew.Name())

	mamba, err := New(environment.ModeMiniforge, deps)
	require.NoError(t, err)
	assert.IsType(t, &Miniforge{}, mamba)
	assert.Equal(t, "miniforge", mamba.Name())
}

func TestNew_UnknownMode(t *testing.T) {
	_, err := New(environment.Mode("apt"), brewDeps(t, testutil.NewFakeRunner()))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownManagerMode))
}

func TestNew_MissingDeps(t *testing.T) {
	_, err := New(environment.ModeBrew, Deps{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}
