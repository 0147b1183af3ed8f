package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/macup/pkg/report"
)

const condaUpdateFixture = `Collecting package metadata (current_repodata.json): done
Solving environment: done

## Package Plan ##

  environment location: /opt/miniconda3

The following packages will be UPDATED:

  numpy              1.26.4-py312h7f4fdc5_0 --> 2.0.1-py312h7f4fdc5_0
  requests                 2.31.0-pyhd8ed1ab_0 --> 2.32.3-pyhd8ed1ab_0

Downloading and Extracting Packages:
Preparing transaction: done
Verifying transaction: done
Executing transaction: done
`

func TestCondaUpdatesParsed(t *testing.T) {
	fakePATH(t, "conda")
	swapExecute(t, func(argv []string) (string, int) {
		assert.Equal(t, []string{"conda", "update", "--all", "-n", "base", "-y"}, argv)
		return condaUpdateFixture, 0
	})

	result := runConda(testContext(t))

	assert.Equal(t, report.StatusUpdated, result.Status)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "numpy", result.Records[0].Name)
	assert.Equal(t, "2.0.1-py312h7f4fdc5_0", result.Records[0].NewVersion)
	assert.Equal(t, "requests", result.Records[1].Name)
}

func TestCondaAlreadyCurrent(t *testing.T) {
	fakePATH(t, "conda")
	swapExecute(t, func(argv []string) (string, int) {
		return "# All requested packages already installed.\n", 0
	})

	result := runConda(testContext(t))

	assert.Equal(t, report.StatusNoUpdates, result.Status)
	assert.Empty(t, result.Records)
}

func TestCondaFailure(t *testing.T) {
	fakePATH(t, "conda")
	swapExecute(t, func(argv []string) (string, int) {
		return "CondaHTTPError: HTTP 000 CONNECTION FAILED\n", 1
	})

	result := runConda(testContext(t))

	assert.Equal(t, report.StatusError, result.Status)
	assert.Empty(t, result.Records)
}

func TestCondaAuditUsesDryRunFlag(t *testing.T) {
	fakePATH(t, "conda")
	swapExecute(t, func(argv []string) (string, int) {
		cmdline := strings.Join(argv, " ")
		require.Contains(t, cmdline, "--dry-run")
		require.NotContains(t, cmdline, " -y")
		return condaUpdateFixture, 0
	})

	ctx := testContext(t)
	ctx.Audit = true
	result := runConda(ctx)

	assert.Equal(t, report.StatusWarning, result.Status)
	require.Len(t, result.Records, 2)
	assert.Contains(t, result.Detail, "(audit)")
}
