package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/report"
)

const brewOutdatedFixture = "wget 1.24.5 -> 1.25.0\nopenssl@3 3.3.1 -> 3.3.2\n"

func TestBrewUpdatesWithRecords(t *testing.T) {
	fakePATH(t, "brew")
	swapExecute(t, func(argv []string) (string, int) {
		switch strings.Join(argv, " ") {
		case "brew update":
			return "Already up-to-date.\n", 0
		case "brew outdated --verbose":
			return brewOutdatedFixture, 0
		case "brew upgrade":
			return "==> Upgrading 2 outdated packages\n", 0
		}
		t.Fatalf("unexpected command: %v", argv)
		return "", 1
	})

	result := runBrew(testContext(t))

	assert.Equal(t, report.StatusUpdated, result.Status)
	require.Len(t, result.Records, 2)
	assert.Equal(t, parse.Record{Name: "wget", OldVersion: "1.24.5", NewVersion: "1.25.0"}, result.Records[0])
	assert.Equal(t, parse.Record{Name: "openssl@3", OldVersion: "3.3.1", NewVersion: "3.3.2"}, result.Records[1])
}

func TestBrewNothingOutdated(t *testing.T) {
	fakePATH(t, "brew")
	swapExecute(t, func(argv []string) (string, int) {
		return "", 0
	})

	result := runBrew(testContext(t))

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Empty(t, result.Records)
}

func TestBrewUpgradeFailureHasNoRecords(t *testing.T) {
	fakePATH(t, "brew")
	swapExecute(t, func(argv []string) (string, int) {
		if strings.Join(argv, " ") == "brew outdated --verbose" {
			return brewOutdatedFixture, 0
		}
		if argv[1] == "upgrade" {
			return "Error: some formula failed\n", 1
		}
		return "", 0
	})

	result := runBrew(testContext(t))

	assert.Equal(t, report.StatusError, result.Status)
	assert.Empty(t, result.Records)
	assert.Contains(t, result.Detail, "run log")
}

func TestBrewAuditNeverUpgrades(t *testing.T) {
	fakePATH(t, "brew")
	swapExecute(t, func(argv []string) (string, int) {
		require.NotEqual(t, "upgrade", argv[1], "audit must not apply updates")
		if strings.Join(argv, " ") == "brew outdated --verbose" {
			return brewOutdatedFixture, 0
		}
		return "", 0
	})

	ctx := testContext(t)
	ctx.Audit = true
	result := runBrew(ctx)

	assert.Equal(t, report.StatusWarning, result.Status)
	require.Len(t, result.Records, 2)
	assert.Contains(t, result.Detail, "(audit)")
}

func TestBrewAuditNothingPending(t *testing.T) {
	fakePATH(t, "brew")
	swapExecute(t, func(argv []string) (string, int) {
		return "", 0
	})

	ctx := testContext(t)
	ctx.Audit = true
	result := runBrew(ctx)

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Empty(t, result.Records)
}

func TestBrewNotInstalled(t *testing.T) {
	fakePATH(t)
	swapExecute(t, func(argv []string) (string, int) {
		t.Fatalf("unexpected execution: %v", argv)
		return "", 1
	})

	result := runBrew(testContext(t))

	assert.Equal(t, report.StatusNotInstalled, result.Status)
	assert.Contains(t, result.Detail, "brew.sh")
}

func TestBrewDryRunExecutesNothing(t *testing.T) {
	fakePATH(t, "brew")
	swapExecute(t, func(argv []string) (string, int) {
		t.Fatalf("dry-run must not execute: %v", argv)
		return "", 1
	})

	ctx := testContext(t)
	ctx.Runner.DryRun = true
	result := runBrew(ctx)

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Equal(t, "dry-run", result.Detail)
	assert.Empty(t, result.Records)
}
