package registry

import (
	"sync"
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type factory func() string

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := New[factory]("package manager")

	require.NoError(t, reg.Register("brew", func() string { return "brew" }))

	got, err := reg.Get("brew")
	require.NoError(t, err)
	assert.Equal(t, "brew", got())
	assert.True(t, reg.Has("brew"))
	assert.False(t, reg.Has("apt"))
}

func TestRegistry_Errors(t *testing.T) {
	reg := New[int]("package manager")
	require.NoError(t, reg.Register("brew", 1))

	err := reg.Register("", 2)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = reg.Register("brew", 3)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	_, err = reg.Get("apt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), `package manager "apt" is not registered`)
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := New[int]("")
	MustRegister(reg, "miniforge", 2)
	MustRegister(reg, "brew", 1)

	assert.Equal(t, []string{"brew", "miniforge"}, reg.List())
}

func TestMustRegister_PanicsOnDuplicate(t *testing.T) {
	reg := New[int]("mode")
	MustRegister(reg, "brew", 1)

	assert.Panics(t, func() { MustRegister(reg, "brew", 2) })
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := New[int]("item")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = reg.Register(string(rune('a'+n%26))+"x", n)
			reg.List()
		}(i)
	}
	wg.Wait()

	assert.Len(t, reg.List(), 26)
}
