package emitter

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		cfg, err := LoadConfig("EMITTER_TEST_DEFAULT_")
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxListeners, cfg.MaxListeners)
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("EMITTER_TEST_MAX_LISTENERS", "25")

		cfg, err := LoadConfig("EMITTER_TEST_")
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.MaxListeners)

		e := NewEventEmitter[string, any](WithConfig(cfg))
		assert.Equal(t, 25, e.MaxListeners())
	})

	t.Run("negative", func(t *testing.T) {
		t.Setenv("EMITTER_TEST_MAX_LISTENERS", "-1")

		_, err := LoadConfig("EMITTER_TEST_")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidMaxListeners))
	})

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("EMITTER_TEST_MAX_LISTENERS", "lots")

		_, err := LoadConfig("EMITTER_TEST_")
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, Config{MaxListeners: 1}.Validate())
	assert.ErrorIs(t, Config{MaxListeners: -3}.Validate(), ErrInvalidMaxListeners)
}
