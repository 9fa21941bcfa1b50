package bridge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadOverlay_missingPathIsNotAnError(t *testing.T) {
	cfg, err := LoadOverlay(DefaultConfig(), "")
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func Test_LoadOverlay_missingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadOverlay(DefaultConfig(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func Test_LoadOverlay_overridesOnlySetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	err := os.WriteFile(path, []byte("bind_port: 9100\nlog_level: debug\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadOverlay(DefaultConfig(), path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.BindPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultConfig().BindIP, cfg.BindIP)
	assert.Equal(t, DefaultConfig().TargetPort, cfg.TargetPort)
}

func Test_LoadOverlay_malformedYAMLIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	err := os.WriteFile(path, []byte("bind_port: [this is not valid\n"), 0644)
	require.NoError(t, err)

	_, err = LoadOverlay(DefaultConfig(), path)
	assert.Error(t, err)
}
