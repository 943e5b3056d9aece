package cmd

import (
	"grimm.is/icewall/internal/executor"
	"grimm.is/icewall/internal/logging"
)

// RunExecChild is the entry point of the hidden exec subcommand. It never
// returns.
func RunExecChild() {
	executor.ChildMain(logging.WithComponent("exec"))
}
