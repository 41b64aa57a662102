package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFileCheck_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	r := (&ConfigFileCheck{}).Run(context.Background())

	assert.Equal(t, StatusWarn, r.Status)
	assert.Contains(t, r.Suggestion, "pulse init")
}

func TestConfigFileCheck_Found(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://box:8080\n"), 0644))

	r := (&ConfigFileCheck{ConfigPath: path}).Run(context.Background())

	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, path)
}

func TestConfigFileCheck_ExplicitMissing(t *testing.T) {
	r := (&ConfigFileCheck{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")}).Run(context.Background())

	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Message, "not found")
}

func TestConfigValidCheck(t *testing.T) {
	ok := (&ConfigValidCheck{Config: config.DefaultConfig()}).Run(context.Background())
	assert.Equal(t, StatusPass, ok.Status)
	assert.Contains(t, ok.Message, "http://localhost:8080/analyze every 2s")

	bad := config.DefaultConfig()
	bad.Overlap = "queue"
	r := (&ConfigValidCheck{Config: bad}).Run(context.Background())
	assert.Equal(t, StatusFail, r.Status)
	assert.NotEmpty(t, r.Suggestion)

	loadErr := errors.New(errors.ErrConfig, "Invalid config format", "")
	r = (&ConfigValidCheck{LoadErr: loadErr}).Run(context.Background())
	assert.Equal(t, StatusFail, r.Status)
	assert.Equal(t, "Invalid config format", r.Message)
	assert.Equal(t, "Check the YAML in your config file", r.Suggestion)
}
