package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcbuild/internal/adapters/config"
	"go.trai.ch/tcbuild/internal/core/domain"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeSettings(t, `
target: arm-none-eabi
prefix: /opt/arm
sourceRoot: sources
jobs: 12
compiler: arm-none-eabi-gcc
`)

	s, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "arm-none-eabi", s.Target)
	assert.Equal(t, "/opt/arm", s.Prefix)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "sources"), s.SourceRoot)
	assert.Equal(t, 12, s.Jobs)
	assert.Equal(t, "arm-none-eabi-gcc", s.Compiler)
}

func TestLoader_Load_Missing(t *testing.T) {
	s, err := config.NewLoader().Load(filepath.Join(t.TempDir(), domain.SettingsFileName))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestLoader_Load_Empty(t *testing.T) {
	s, err := config.NewLoader().Load(writeSettings(t, ""))
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, domain.Settings{}, *s)
}

func TestLoader_Load_UnknownKey(t *testing.T) {
	_, err := config.NewLoader().Load(writeSettings(t, "prefx: /opt/arm\n"))
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoader_Load_Malformed(t *testing.T) {
	_, err := config.NewLoader().Load(writeSettings(t, "jobs: [1, 2\n"))
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoader_Load_NegativeJobs(t *testing.T) {
	_, err := config.NewLoader().Load(writeSettings(t, "jobs: -1\n"))
	require.ErrorIs(t, err, domain.ErrInvalidJobs)
}

func TestLoader_Load_Unreadable(t *testing.T) {
	dir := t.TempDir()

	_, err := config.NewLoader().Load(dir)

	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.Contains(t, err.Error(), "is a directory")
}
