package osal

import (
	"github.com/stretchr/testify/mock"
)

// ExitPanic is the value MockPlatform.Exit panics with, standing in for a
// process that never returns.
type ExitPanic int

// MockPlatform is a mock implementation of Platform for testing.
type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) Spawn(spec Spec) (Outcome, error) {
	args := m.Called(spec)
	return args.Get(0).(Outcome), args.Error(1)
}

func (m *MockPlatform) Wait(pid int) (ExitStatus, error) {
	args := m.Called(pid)
	return args.Get(0).(ExitStatus), args.Error(1)
}

func (m *MockPlatform) Exec(path string, argv, env []string) error {
	args := m.Called(path, argv, env)
	return args.Error(0)
}

// Exit records the call and panics with ExitPanic(code).
func (m *MockPlatform) Exit(code int) {
	m.Called(code)
	panic(ExitPanic(code))
}

func (m *MockPlatform) Getpid() int {
	return m.Called().Int(0)
}

func (m *MockPlatform) Monotonic() int64 {
	return m.Called().Get(0).(int64)
}

func (m *MockPlatform) Reseed(seed uint64) {
	m.Called(seed)
}

func (m *MockPlatform) CloseFrom(fd int) error {
	return m.Called(fd).Error(0)
}

func (m *MockPlatform) IsOpen(fd int) bool {
	return m.Called(fd).Bool(0)
}

func (m *MockPlatform) OpenNull(fd int) error {
	return m.Called(fd).Error(0)
}

func (m *MockPlatform) Getuid() int  { return m.Called().Int(0) }
func (m *MockPlatform) Geteuid() int { return m.Called().Int(0) }
func (m *MockPlatform) Getgid() int  { return m.Called().Int(0) }
func (m *MockPlatform) Getegid() int { return m.Called().Int(0) }

func (m *MockPlatform) Setgroups(gids []int) error {
	return m.Called(gids).Error(0)
}

func (m *MockPlatform) Setregid(rgid, egid int) error {
	return m.Called(rgid, egid).Error(0)
}

func (m *MockPlatform) Setreuid(ruid, euid int) error {
	return m.Called(ruid, euid).Error(0)
}
