package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4alls/Mostro-MVP-Program/pkg/config"
)

func TestStore_HappyPath(t *testing.T) {
	s := NewStore()
	c := s.Config("key")

	_, err := c.Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	expected := "value"
	s.Set("key", expected)
	val, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, val)

	// other keys are unaffected
	_, err = s.Config("other").Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	s.Clear("key")
	_, err = c.Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	s.InduceErrors()
	_, err = c.Get(context.Background())
	assert.Equal(t, errDeveloperInduced, err)

	s.StopInducingErrors()
	_, err = c.Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	c.Shutdown()
	_, err = c.Get(context.Background())
	assert.Equal(t, config.ErrShutdown, err)
	_, err = s.Config("other").Get(context.Background())
	assert.Equal(t, config.ErrShutdown, err)
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(nil).Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	val, err := NewConfig(true).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, val)
}
