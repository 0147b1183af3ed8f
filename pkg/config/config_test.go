package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macup.yml")
	content := `log_file: /var/log/macup.log
skip:
  - conda
  - appstore
applications_dir: /Custom/Applications
unmanaged_denylist:
  - CorpAgent
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/log/macup.log", cfg.LogFile)
	assert.Equal(t, []string{"conda", "appstore"}, cfg.Skip)
	assert.Equal(t, "/Custom/Applications", cfg.ApplicationsDir)
	assert.Equal(t, []string{"CorpAgent"}, cfg.UnmanagedDenylist)
}

func TestLoadMissingDefaultIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().ApplicationsDir, cfg.ApplicationsDir)
	assert.Empty(t, cfg.Skip)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macup.yml")
	require.NoError(t, os.WriteFile(path, []byte("skip: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFillsDefaultApplicationsDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macup.yml")
	require.NoError(t, os.WriteFile(path, []byte("log_file: x.log\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/Applications", cfg.ApplicationsDir)
}
