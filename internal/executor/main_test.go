package executor

import (
	"os"
	"testing"

	"grimm.is/icewall/internal/logging"
	"grimm.is/icewall/internal/osal"
)

// The test binary doubles as the child entry point.
func TestMain(m *testing.M) {
	if osal.IsChildProcess() {
		ChildMain(logging.New(logging.DefaultConfig()))
	}
	os.Exit(m.Run())
}
