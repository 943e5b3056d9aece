package executor

import "fmt"

// Exit statuses of a child that could not reach its target program.
const (
	ExitSanitizeFailed      = 121
	ExitPrivilegeDropFailed = 122
	ExitPayloadFailed       = 123
	ExitParentRejected      = 124
	ExitExecFailed          = 127
)

// ChildStage names the step of the child branch that failed.
type ChildStage int

const (
	StageSanitize ChildStage = iota
	StagePrivilegeDrop
	StageExec
)

func (s ChildStage) String() string {
	switch s {
	case StageSanitize:
		return "sanitize descriptors"
	case StagePrivilegeDrop:
		return "drop privileges"
	default:
		return "replace image"
	}
}

// ChildError is a failure inside the child branch. It never crosses back to
// the parent; the child logs it and terminates with ExitCode.
type ChildError struct {
	Stage ChildStage
	Err   error
}

func (e *ChildError) Error() string {
	return fmt.Sprintf("cannot %s: %v", e.Stage, e.Err)
}

func (e *ChildError) Unwrap() error {
	return e.Err
}

// ExitCode is the status the child terminates with.
func (e *ChildError) ExitCode() int {
	switch e.Stage {
	case StageSanitize:
		return ExitSanitizeFailed
	case StagePrivilegeDrop:
		return ExitPrivilegeDropFailed
	default:
		return ExitExecFailed
	}
}
