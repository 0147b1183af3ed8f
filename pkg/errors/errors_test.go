package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(stderrors.New("boom")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, stderrors.New("boom"))))
	assert.Equal(t, ExitSuccess, GetExitCode(&ExitError{Code: ExitSuccess}))
}

func TestGetExitCodeUnwrapsWrappedExitError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewExitErrorf(ExitFailure, "inner"))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
}

func TestExitErrorMessagePrecedence(t *testing.T) {
	withMessage := &ExitError{Code: ExitFailure, Message: "msg", Err: stderrors.New("under")}
	assert.Equal(t, "msg", withMessage.Error())

	withErr := &ExitError{Code: ExitFailure, Err: stderrors.New("under")}
	assert.Equal(t, "under", withErr.Error())

	bare := &ExitError{Code: ExitFailure}
	assert.Equal(t, "exit code 1", bare.Error())
}

func TestTypedErrorHelpers(t *testing.T) {
	notInstalled := &NotInstalledError{Tool: "mas"}
	got, ok := IsNotInstalled(fmt.Errorf("wrapped: %w", notInstalled))
	require.True(t, ok)
	assert.Equal(t, "mas", got.Tool)

	checkErr := &UpdateCheckError{Category: "node", Err: stderrors.New("timeout")}
	gotCheck, ok := IsUpdateCheckFailed(checkErr)
	require.True(t, ok)
	assert.Contains(t, gotCheck.Error(), "node")
	assert.Contains(t, gotCheck.Error(), "timeout")

	mismatch := &MismatchError{Tool: "node", Expected: "v22.0.0", Actual: "v20.0.0"}
	gotMismatch, ok := IsMismatch(mismatch)
	require.True(t, ok)
	assert.Contains(t, gotMismatch.Error(), "expected v22.0.0")

	manual := &ManualActionError{Detail: "run Software Update"}
	gotManual, ok := IsManualAction(manual)
	require.True(t, ok)
	assert.Equal(t, "run Software Update", gotManual.Error())
	assert.Equal(t, "manual action required", (&ManualActionError{}).Error())

	missing := &MissingCoreError{Tools: []string{"brew", "conda"}}
	gotMissing, ok := IsMissingCore(missing)
	require.True(t, ok)
	assert.Equal(t, []string{"brew", "conda"}, gotMissing.Tools)

	_, ok = IsMissingCore(stderrors.New("other"))
	assert.False(t, ok)
}

func TestUpdateCheckErrorUnwrap(t *testing.T) {
	inner := stderrors.New("connection refused")
	err := &UpdateCheckError{Category: "node", Err: inner}
	assert.True(t, stderrors.Is(err, inner))
}
