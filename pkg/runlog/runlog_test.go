package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendWritesHeaderOncePerRun(t *testing.T) {
	original := timeNow
	timeNow = func() time.Time { return time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC) }
	defer func() { timeNow = original }()

	path := filepath.Join(t.TempDir(), "macup.log")
	log, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = log.Close() }()

	require.NoError(t, log.Append("first blob"))
	require.NoError(t, log.Append("second blob"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Equal(t, 1, strings.Count(content, "===== macup run 2024-06-01 10:30:00 ====="))
	assert.Contains(t, content, "first blob\n")
	assert.Contains(t, content, "second blob\n")
}

func TestLogIsAppendOnlyAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macup.log")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Append("run one"))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Append("run two"))
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run one")
	assert.Contains(t, string(data), "run two")
	assert.Equal(t, 2, strings.Count(string(data), "===== macup run "))
}

func TestAppendToNilLogIsNoop(t *testing.T) {
	var log *Log
	assert.NoError(t, log.Append("anything"))
	assert.NoError(t, log.Close())
	assert.Empty(t, log.Path())
}

func TestAppendAfterCloseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macup.log")
	log, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	assert.Error(t, log.Append("late"))
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing-dir", "macup.log"))
	assert.Error(t, err)
}
