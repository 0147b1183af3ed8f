package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/report"
)

func TestUVSelfAndToolUpgrades(t *testing.T) {
	fakePATH(t, "uv")
	swapExecute(t, func(argv []string) (string, int) {
		switch strings.Join(argv, " ") {
		case "uv self update":
			return "Upgraded uv from v0.4.1 to v0.4.9\n", 0
		case "uv tool upgrade --all":
			return "Updated ruff v0.6.1 -> v0.6.4\nUpdated mypy v1.11.0 -> v1.11.2\n", 0
		}
		t.Fatalf("unexpected command: %v", argv)
		return "", 1
	})

	result := runUV(testContext(t))

	assert.Equal(t, report.StatusUpdated, result.Status)
	require.Len(t, result.Records, 3)
	assert.Equal(t, parse.Record{Name: "uv", OldVersion: "0.4.1", NewVersion: "0.4.9"}, result.Records[0])
	assert.Equal(t, parse.Record{Name: "ruff", OldVersion: "0.6.1", NewVersion: "0.6.4"}, result.Records[1])
	assert.Equal(t, parse.Record{Name: "mypy", OldVersion: "1.11.0", NewVersion: "1.11.2"}, result.Records[2])
}

func TestUVNothingUpgraded(t *testing.T) {
	fakePATH(t, "uv")
	swapExecute(t, func(argv []string) (string, int) {
		if argv[1] == "self" {
			return "You're on the latest version of uv (v0.4.9)\n", 0
		}
		return "Nothing to upgrade\n", 0
	})

	result := runUV(testContext(t))

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Empty(t, result.Records)
}

func TestUVFailureHasNoRecords(t *testing.T) {
	fakePATH(t, "uv")
	swapExecute(t, func(argv []string) (string, int) {
		if argv[1] == "self" {
			return "Upgraded uv from v0.4.1 to v0.4.9\n", 0
		}
		return "error: failed to upgrade ruff\n", 1
	})

	result := runUV(testContext(t))

	assert.Equal(t, report.StatusError, result.Status)
	assert.Empty(t, result.Records)
}

func TestUVAuditExecutesNothing(t *testing.T) {
	fakePATH(t, "uv")
	swapExecute(t, func(argv []string) (string, int) {
		t.Fatalf("audit must not execute: %v", argv)
		return "", 1
	})

	ctx := testContext(t)
	ctx.Audit = true
	result := runUV(ctx)

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Contains(t, result.Detail, "audit")
}

func TestUVNotInstalled(t *testing.T) {
	fakePATH(t)
	result := runUV(testContext(t))

	assert.Equal(t, report.StatusNotInstalled, result.Status)
	assert.Contains(t, result.Detail, "astral.sh")
}
