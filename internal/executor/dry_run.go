package executor

import (
	"strings"
	"sync"
)

// DryRun implements Runner but only records what would run.
type DryRun struct {
	mu       sync.Mutex
	Commands []string
}

// NewDryRun creates a new dry run executor.
func NewDryRun() *DryRun {
	return &DryRun{
		Commands: make([]string, 0),
	}
}

// ExecuteProgram records argv instead of executing it.
func (d *DryRun) ExecuteProgram(path string, argv, env []string, flags Flags) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Commands = append(d.Commands, strings.Join(argv, " "))
	return nil
}
