package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sceneio.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"

[io]
sequential = true
workers = 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
	assert.True(t, cfg.IO.Sequential)
	assert.Equal(t, 3, cfg.IO.Workers)
	// untouched keys keep their default
	assert.True(t, cfg.IO.FlipTexcoord)
	assert.Len(t, cfg.Options(nil), 3)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"syntax":  "[log\n",
		"level":   "[log]\nlevel = \"loud\"\n",
		"workers": "[io]\nworkers = -2\n",
		"type":    "[io]\nworkers = \"many\"\n",
	} {
		path := filepath.Join(dir, name+".toml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}
