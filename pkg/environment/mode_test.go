package environment

import (
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMode(t *testing.T) {
	withSudo := Classification{HasSudo: true}
	withoutSudo := Classification{}

	tests := []struct {
		name string
		mode string
		c    Classification
		want Mode
	}{
		{"auto with sudo", "auto", withSudo, ModeBrew},
		{"auto without sudo", "auto", withoutSudo, ModeMiniforge},
		{"empty means auto", "", withoutSudo, ModeMiniforge},
		{"explicit brew without sudo", "brew", withoutSudo, ModeBrew},
		{"explicit miniforge with sudo", "miniforge", withSudo, ModeMiniforge},
		{"case insensitive", "BREW", withoutSudo, ModeBrew},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectMode(tt.mode, tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectMode_Unknown(t *testing.T) {
	_, err := SelectMode("apt", Classification{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
