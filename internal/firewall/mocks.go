package firewall

import (
	"github.com/stretchr/testify/mock"
)

// MockRuleFactory is a mock implementation of RuleFactory for testing.
type MockRuleFactory struct {
	mock.Mock
}

func (m *MockRuleFactory) CreateRule(name string, commands []string) *Rule {
	args := m.Called(name, commands)
	return args.Get(0).(*Rule)
}
