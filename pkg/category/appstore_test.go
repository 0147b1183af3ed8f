package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/macup/pkg/parse"
	"github.com/ajxudir/macup/pkg/report"
)

func TestAppStoreUpgrades(t *testing.T) {
	fakePATH(t, "mas")
	swapExecute(t, func(argv []string) (string, int) {
		assert.Equal(t, []string{"mas", "upgrade"}, argv)
		return "Upgrading 2 outdated applications:\n==> Installed Xcode\n==> Installed Slack for Desktop\n", 0
	})

	result := runAppStore(testContext(t))

	assert.Equal(t, report.StatusUpdated, result.Status)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "Xcode", result.Records[0].Name)
	assert.Equal(t, "Slack for Desktop", result.Records[1].Name)
}

func TestAppStoreEverythingCurrent(t *testing.T) {
	fakePATH(t, "mas")
	swapExecute(t, func(argv []string) (string, int) {
		return "Everything up-to-date\n", 0
	})

	result := runAppStore(testContext(t))

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Empty(t, result.Records)
}

func TestAppStoreUpgradeFailure(t *testing.T) {
	fakePATH(t, "mas")
	swapExecute(t, func(argv []string) (string, int) {
		return "Error: Not signed in\n", 1
	})

	result := runAppStore(testContext(t))

	assert.Equal(t, report.StatusError, result.Status)
	assert.Empty(t, result.Records)
}

func TestAppStoreNotInstalled(t *testing.T) {
	fakePATH(t)
	result := runAppStore(testContext(t))

	assert.Equal(t, report.StatusNotInstalled, result.Status)
	assert.Contains(t, result.Detail, "brew install mas")
}

func TestAppStoreAuditListsOutdated(t *testing.T) {
	fakePATH(t, "mas")
	swapExecute(t, func(argv []string) (string, int) {
		require.Equal(t, []string{"mas", "outdated"}, argv, "audit must not apply updates")
		return "497799835 Xcode (15.4 -> 16.0)\n1475387142 Tailscale (1.70.0 -> 1.72.1)\n", 0
	})

	ctx := testContext(t)
	ctx.Audit = true
	result := runAppStore(ctx)

	assert.Equal(t, report.StatusWarning, result.Status)
	require.Len(t, result.Records, 2)
	assert.Equal(t, parse.Record{Name: "Xcode", OldVersion: "15.4", NewVersion: "16.0"}, result.Records[0])
	assert.Equal(t, parse.Record{Name: "Tailscale", OldVersion: "1.70.0", NewVersion: "1.72.1"}, result.Records[1])
}

func TestParseMasOutdatedWithoutVersionTransition(t *testing.T) {
	records := parseMasOutdated("497799835 Xcode\n")

	require.Len(t, records, 1)
	assert.Equal(t, parse.Record{Name: "Xcode"}, records[0])
}
