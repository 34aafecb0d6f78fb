package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servekit/pkg/config"
)

type defaultsConfig struct {
	Addr    string        `env:"CFG_TEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CFG_TEST_TIMEOUT" envDefault:"10s"`
	Debug   bool          `env:"CFG_TEST_DEBUG" envDefault:"true"`
}

type overrideConfig struct {
	Addr string `env:"CFG_TEST_OVERRIDE_ADDR" envDefault:":8080"`
	Port int    `env:"CFG_TEST_OVERRIDE_PORT" envDefault:"1"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"default"`
}

type requiredConfig struct {
	Value string `env:"CFG_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Value string `env:"CFG_TEST_FROM_FILE"`
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("CFG_TEST_ADDR")
	os.Unsetenv("CFG_TEST_TIMEOUT")
	os.Unsetenv("CFG_TEST_DEBUG")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CFG_TEST_OVERRIDE_ADDR", ":9000")
	t.Setenv("CFG_TEST_OVERRIDE_PORT", "42")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 42, cfg.Port)
}

func TestLoad_CachedPerType(t *testing.T) {
	t.Setenv("CFG_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFG_TEST_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.Reset()

	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("CFG_TEST_REQUIRED")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("CFG_TEST_REQUIRED", "present")
	require.NoError(t, config.Load(&cfg), "failed loads are not cached")
	assert.Equal(t, "present", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("CFG_TEST_REQUIRED")
	config.Reset()

	var cfg requiredConfig
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoadEnvFiles(t *testing.T) {
	os.Unsetenv("CFG_TEST_FROM_FILE")
	t.Cleanup(func() { os.Unsetenv("CFG_TEST_FROM_FILE") })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFG_TEST_FROM_FILE=from-file\n"), 0o600))
	require.NoError(t, config.LoadEnvFiles(path))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)

	assert.ErrorIs(t, config.LoadEnvFiles(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
}
