package executor

import (
	"github.com/stretchr/testify/mock"
)

// MockRunner is a mock implementation of Runner for testing.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) ExecuteProgram(path string, argv, env []string, flags Flags) error {
	args := m.Called(path, argv, env, flags)
	return args.Error(0)
}
