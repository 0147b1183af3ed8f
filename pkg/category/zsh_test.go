package category

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/macup/pkg/report"
)

// installOhMyZsh plants the upgrade script fixture under the context's
// home directory and clears the ZSH override.
func installOhMyZsh(t *testing.T, ctx *Context) string {
	t.Helper()
	t.Setenv("ZSH", "")
	root := filepath.Join(ctx.Home, ".oh-my-zsh")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tools"), 0o755))
	script := filepath.Join(root, "tools", "upgrade.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/zsh\n"), 0o755))
	return script
}

func TestZshNotInstalled(t *testing.T) {
	t.Setenv("ZSH", "")
	ctx := testContext(t)
	result := runZsh(ctx)

	assert.Equal(t, report.StatusNotInstalled, result.Status)
	assert.Contains(t, result.Detail, "ohmyz.sh")
}

func TestZshUpgradeRunsThroughShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	ctx := testContext(t)
	script := installOhMyZsh(t, ctx)

	swapExecute(t, func(argv []string) (string, int) {
		require.Equal(t, "/bin/zsh", argv[0])
		require.Equal(t, []string{"-l", "-c"}, argv[1:3])
		require.Contains(t, argv[3], script)
		return "Updating Oh My Zsh\nHooray! Oh My Zsh has been updated!\n", 0
	})

	result := runZsh(ctx)

	assert.Equal(t, report.StatusUpdated, result.Status)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "oh-my-zsh", result.Records[0].Name)
}

func TestZshAlreadyLatest(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	ctx := testContext(t)
	installOhMyZsh(t, ctx)

	swapExecute(t, func(argv []string) (string, int) {
		return "Oh My Zsh is already at the latest version.\n", 0
	})

	result := runZsh(ctx)

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Empty(t, result.Records)
}

func TestZshUpgradeScriptFailure(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	ctx := testContext(t)
	installOhMyZsh(t, ctx)

	swapExecute(t, func(argv []string) (string, int) {
		return "fatal: unable to access remote\n", 1
	})

	result := runZsh(ctx)

	assert.Equal(t, report.StatusError, result.Status)
	assert.Empty(t, result.Records)
}

func TestZshAuditTouchesNothing(t *testing.T) {
	ctx := testContext(t)
	installOhMyZsh(t, ctx)
	ctx.Audit = true

	swapExecute(t, func(argv []string) (string, int) {
		t.Fatalf("audit must not execute: %v", argv)
		return "", 1
	})

	result := runZsh(ctx)

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Contains(t, result.Detail, "audit")
}

func TestZshHonorsZSHEnvOverride(t *testing.T) {
	ctx := testContext(t)
	override := filepath.Join(t.TempDir(), "omz")
	require.NoError(t, os.MkdirAll(filepath.Join(override, "tools"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(override, "tools", "upgrade.sh"), []byte("#!/bin/zsh\n"), 0o755))
	t.Setenv("ZSH", override)
	t.Setenv("SHELL", "/bin/zsh")

	swapExecute(t, func(argv []string) (string, int) {
		require.Contains(t, argv[3], override)
		return "already at the latest version\n", 0
	})

	result := runZsh(ctx)
	assert.Equal(t, report.StatusNoUpdates, result.Status)
}
