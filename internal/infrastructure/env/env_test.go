package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvServiceAt_LayersFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MINICLAW_A=base\nMINICLAW_B=base\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("MINICLAW_B=test\n"), 0o644))

	t.Setenv("APP_ENV", "test")
	t.Setenv("MINICLAW_A", "")
	t.Setenv("MINICLAW_B", "")
	os.Unsetenv("MINICLAW_A")
	os.Unsetenv("MINICLAW_B")

	e := NewEnvServiceAt(dir)

	assert.Equal(t, "base", e.Get("MINICLAW_A"))
	assert.Equal(t, "test", e.Get("MINICLAW_B"))
}

func TestEnvService_Typed(t *testing.T) {
	e := &EnvService{}

	t.Setenv("MINICLAW_BOOL", "true")
	t.Setenv("MINICLAW_BAD_BOOL", "maybe")
	t.Setenv("MINICLAW_INT", "42")
	t.Setenv("MINICLAW_DURATION", "90s")
	t.Setenv("MINICLAW_STRING", "value")

	assert.True(t, e.GetBool("MINICLAW_BOOL", false))
	assert.True(t, e.GetBool("MINICLAW_BAD_BOOL", true))
	assert.False(t, e.GetBool("MINICLAW_UNSET_BOOL", false))
	assert.Equal(t, 42, e.GetInt("MINICLAW_INT", 1))
	assert.Equal(t, 7, e.GetInt("MINICLAW_STRING", 7))
	assert.Equal(t, 90*time.Second, e.GetDuration("MINICLAW_DURATION", time.Second))
	assert.Equal(t, time.Second, e.GetDuration("MINICLAW_STRING", time.Second))
	assert.Equal(t, "value", e.GetWithDefault("MINICLAW_STRING", "x"))
	assert.Equal(t, "x", e.GetWithDefault("MINICLAW_UNSET", "x"))
}
