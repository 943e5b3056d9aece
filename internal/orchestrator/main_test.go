package orchestrator

import (
	"os"
	"testing"

	"grimm.is/icewall/internal/executor"
	"grimm.is/icewall/internal/logging"
	"grimm.is/icewall/internal/osal"
)

// Real executors re-execute the test binary for the child branch.
func TestMain(m *testing.M) {
	if osal.IsChildProcess() {
		executor.ChildMain(logging.New(logging.DefaultConfig()))
	}
	os.Exit(m.Run())
}
