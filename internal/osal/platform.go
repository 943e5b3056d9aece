// Package osal is the narrow operating-system seam used by the secure
// executor. Every primitive the fork/exec protocol needs is a method on
// Platform so the protocol itself can be exercised without touching the host.
//
// Go cannot fork without exec, so the Linux implementation creates the child
// by re-executing the current binary with the hidden ExecCommand argument.
// The child receives its Spec over an inherited pipe and runs the same
// protocol with a Platform whose Spawn reports BranchChild.
package osal

import (
	"errors"
	"fmt"
	"syscall"
)

// ExecCommand is the hidden argument that selects the child entry point.
const ExecCommand = "__exec"

// ErrUnsupported is returned by constructors on platforms without an implementation.
var ErrUnsupported = errors.New("process platform not supported on this operating system")

// Branch identifies which side of the spawn the caller is executing on.
type Branch int

const (
	BranchParent Branch = iota
	BranchChild
)

func (b Branch) String() string {
	if b == BranchChild {
		return "child"
	}
	return "parent"
}

// Outcome is the result of Spawn. PID is the child's pid in the parent and
// the process's own pid in the child.
type Outcome struct {
	Branch Branch
	PID    int
}

// Spec is everything the child branch needs to replace its image.
type Spec struct {
	Path  string
	Argv  []string
	Env   []string
	Flags uint32
}

// ExitStatus describes how a child terminated.
type ExitStatus struct {
	Code     int
	Signaled bool
	Signal   syscall.Signal
}

// Success reports whether the child exited normally with status 0.
func (s ExitStatus) Success() bool {
	return !s.Signaled && s.Code == 0
}

func (s ExitStatus) String() string {
	if s.Signaled {
		return fmt.Sprintf("signal %d", int(s.Signal))
	}
	return fmt.Sprintf("exit %d", s.Code)
}

// Platform provides the primitive operations of the fork/exec protocol.
// Implementations must never be shared between goroutines.
type Platform interface {
	// Spawn creates a child process for spec.
	Spawn(spec Spec) (Outcome, error)
	// Wait blocks until the child identified by pid terminates. It may
	// return EINTR, in which case the caller retries.
	Wait(pid int) (ExitStatus, error)
	// Exec replaces the process image. It only returns on failure.
	Exec(path string, argv, env []string) error
	// Exit terminates the process immediately without running deferred
	// code or returning to the caller.
	Exit(code int)

	// Getpid provides the current process id.
	Getpid() int
	// Monotonic provides the monotonic clock in nanoseconds.
	Monotonic() int64
	// Reseed reseeds the process-wide pseudo-random generator.
	Reseed(seed uint64)

	// CloseFrom closes every descriptor numbered fd or higher.
	CloseFrom(fd int) error
	// IsOpen reports whether fd refers to an open descriptor.
	IsOpen(fd int) bool
	// OpenNull opens the null device on exactly fd.
	OpenNull(fd int) error

	Getuid() int
	Geteuid() int
	Getgid() int
	Getegid() int
	// Setgroups replaces the supplementary group list.
	Setgroups(gids []int) error
	// Setregid sets the real and effective group ids.
	Setregid(rgid, egid int) error
	// Setreuid sets the real and effective user ids.
	Setreuid(ruid, euid int) error
}
