package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/runmatrix/internal/config"
	"github.com/mrz1836/runmatrix/internal/errors"
)

func TestSelect(t *testing.T) {
	cfg := validConfig()

	t.Run("empty selection returns all environments", func(t *testing.T) {
		envs, err := config.Select(cfg, nil)
		require.NoError(t, err)
		require.Len(t, envs, 2)
		assert.Equal(t, "Linux", envs[0].Name)
		assert.Equal(t, "Windows", envs[1].Name)
	})

	t.Run("selection preserves declaration order", func(t *testing.T) {
		envs, err := config.Select(cfg, []string{"Windows", "Linux"})
		require.NoError(t, err)
		require.Len(t, envs, 2)
		assert.Equal(t, "Linux", envs[0].Name)
		assert.Equal(t, "Windows", envs[1].Name)
	})

	t.Run("single selection", func(t *testing.T) {
		envs, err := config.Select(cfg, []string{"Windows"})
		require.NoError(t, err)
		require.Len(t, envs, 1)
		assert.Equal(t, "Windows", envs[0].Name)
	})

	t.Run("unknown name is a configuration error", func(t *testing.T) {
		envs, err := config.Select(cfg, []string{"Linux", "Solaris"})
		require.Error(t, err)
		assert.Nil(t, envs)
		assert.ErrorIs(t, err, errors.ErrUnknownEnvironment)
		assert.True(t, errors.IsExitCode2Error(err))
	})

	t.Run("duplicate flags select once", func(t *testing.T) {
		envs, err := config.Select(cfg, []string{"Linux", "Linux"})
		require.NoError(t, err)
		require.Len(t, envs, 1)
		assert.Equal(t, "Linux", envs[0].Name)
	})
}
