package executor

import (
	"os"
	"runtime"

	"grimm.is/icewall/internal/logging"
	"grimm.is/icewall/internal/osal"
)

// ChildMain is the entry point of a process started by the Linux platform's
// Spawn. It receives the payload and runs the child branch of
// ExecuteProgram, which ends in the target program or an immediate exit.
//
// A payload is only accepted from a parent running this same executable.
func ChildMain(logger *logging.Logger) {
	// identity changes and execve must happen on one thread
	runtime.LockOSThread()

	if err := osal.VerifyParent(); err != nil {
		logger.Error("refusing exec payload", "error", err)
		os.Exit(ExitParentRejected)
	}

	var spec osal.Spec
	if err := osal.Receive(&spec); err != nil {
		logger.Error("cannot receive exec payload", "error", err)
		os.Exit(ExitPayloadFailed)
	}

	p, err := osal.NewChild()
	if err != nil {
		logger.Error("cannot create child platform", "error", err)
		os.Exit(ExitPayloadFailed)
	}

	e := New(p, Options{Logger: logger})
	_ = e.ExecuteProgram(spec.Path, spec.Argv, spec.Env, childFlags(p, Flags(spec.Flags)))
	p.Exit(ExitExecFailed)
}

// childFlags forces descriptor sanitizing and privilege dropping while the
// process holds a setuid or setgid identity, whatever the payload asked for.
func childFlags(p osal.Platform, flags Flags) Flags {
	if p.Getuid() != p.Geteuid() || p.Getgid() != p.Getegid() {
		flags |= SanitizeDescriptors | DropPrivileges
	}
	return flags
}
