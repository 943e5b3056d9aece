// Package executor runs external programs with least privilege.
//
// ExecuteProgram follows a fixed protocol on top of an osal.Platform:
// spawn, optionally reseed in whichever branch is running, then either wait
// for the child (parent) or sanitize descriptors, drop privileges and replace
// the image (child). The child branch never returns to its caller.
package executor

import (
	"syscall"

	"grimm.is/icewall/internal/errors"
	"grimm.is/icewall/internal/logging"
	"grimm.is/icewall/internal/osal"
)

// Runner executes a program. SecureExecutor and DryRun implement it.
type Runner interface {
	ExecuteProgram(path string, argv, env []string, flags Flags) error
}

// ExitObserver is notified of every child exit status the parent collects.
type ExitObserver func(path string, status osal.ExitStatus)

// SecureExecutor drives the fork/exec protocol.
type SecureExecutor struct {
	platform osal.Platform
	logger   *logging.Logger
	onExit   ExitObserver
}

// Options configures a SecureExecutor.
type Options struct {
	Logger *logging.Logger
	OnExit ExitObserver
}

// New creates a SecureExecutor on top of platform.
func New(platform osal.Platform, opts Options) *SecureExecutor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.WithComponent("executor")
	}
	return &SecureExecutor{
		platform: platform,
		logger:   logger,
		onExit:   opts.OnExit,
	}
}

// ExecuteProgram runs path with argv and env under flags.
//
// In the parent it returns nil once the child has been created and, with
// WaitForCompletion, reaped. A nonzero child status is logged and reported
// to the ExitObserver but is not an error. The only errors are a failed
// spawn (KindSpawn) and a failed wait (KindExecution).
func (e *SecureExecutor) ExecuteProgram(path string, argv, env []string, flags Flags) error {
	p := e.platform

	out, err := p.Spawn(osal.Spec{
		Path:  path,
		Argv:  argv,
		Env:   env,
		Flags: uint32(flags),
	})
	if err != nil {
		err = errors.Wrapf(err, errors.KindSpawn, "cannot spawn %s", path)
		return errors.Attr(err, "path", path)
	}

	if flags.Has(ReseedRandomness) {
		p.Reseed(DeriveSeed(p.Monotonic(), p.Getpid()))
	}

	if out.Branch == osal.BranchChild {
		e.runChild(path, argv, env, flags)
		panic("unreachable")
	}

	e.logger.Debug("spawned child", "path", path, "pid", out.PID, "flags", flags.String())
	if !flags.Has(WaitForCompletion) {
		return nil
	}

	status, err := e.wait(out.PID)
	if err != nil {
		err = errors.Wrapf(err, errors.KindExecution, "cannot wait for %s (pid %d)", path, out.PID)
		return errors.Attr(err, "path", path)
	}

	if status.Success() {
		e.logger.Debug("child exited", "path", path, "pid", out.PID, "status", status.String())
	} else {
		e.logger.Warn("child exited unsuccessfully", "path", path, "pid", out.PID, "status", status.String())
	}
	if e.onExit != nil {
		e.onExit(path, status)
	}
	return nil
}

// wait retries only on EINTR.
func (e *SecureExecutor) wait(pid int) (osal.ExitStatus, error) {
	for {
		status, err := e.platform.Wait(pid)
		if errors.Is(err, syscall.EINTR) {
			continue
		}
		return status, err
	}
}

// runChild never returns: every path ends in Exec or Exit.
func (e *SecureExecutor) runChild(path string, argv, env []string, flags Flags) {
	p := e.platform

	if flags.Has(SanitizeDescriptors) {
		if err := sanitizeDescriptors(p); err != nil {
			e.die(&ChildError{Stage: StageSanitize, Err: err})
		}
	}

	if flags.Has(DropPrivileges) {
		if err := dropPrivileges(p); err != nil {
			e.die(&ChildError{Stage: StagePrivilegeDrop, Err: err})
		}
	}

	err := p.Exec(path, argv, env)
	e.die(&ChildError{Stage: StageExec, Err: err})
}

func (e *SecureExecutor) die(err *ChildError) {
	e.logger.Error("child cannot continue", "error", err, "exit", err.ExitCode())
	e.platform.Exit(err.ExitCode())
}

// sanitizeDescriptors closes everything above the standard streams first so
// that reopening a missing stream gets the lowest free number.
func sanitizeDescriptors(p osal.Platform) error {
	if err := p.CloseFrom(3); err != nil {
		return err
	}
	for fd := 0; fd < 3; fd++ {
		if p.IsOpen(fd) {
			continue
		}
		if err := p.OpenNull(fd); err != nil {
			return err
		}
	}
	return nil
}

// dropPrivileges restricts groups, then group ids, then user ids. Changing
// uid first would forfeit the right to change the rest.
func dropPrivileges(p osal.Platform) error {
	ruid, euid := p.Getuid(), p.Geteuid()
	rgid, egid := p.Getgid(), p.Getegid()

	if euid == 0 {
		if err := p.Setgroups([]int{rgid}); err != nil {
			return err
		}
	}
	if rgid != egid {
		if err := p.Setregid(rgid, rgid); err != nil {
			return err
		}
	}
	if ruid != euid {
		if err := p.Setreuid(ruid, ruid); err != nil {
			return err
		}
	}
	return nil
}

// DeriveSeed mixes a monotonic timestamp with the pid so that parent and
// children seeded in the same instant still diverge.
func DeriveSeed(monotonic int64, pid int) uint64 {
	s := uint64(monotonic) ^ uint64(pid)
	return s ^ (s << 21) ^ (s >> 35)
}
