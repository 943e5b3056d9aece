package config

import "strings"

// DefaultPath is the search path every executed program receives.
const DefaultPath = "PATH=/usr/sbin:/usr/bin:/sbin:/bin"

// Config is a decoded configuration. It is loaded once per run and never
// modified afterwards.
type Config struct {
	Network InterfaceSpec
	Rules   []RuleSpec
	// Environment holds extra KEY=VALUE entries for executed programs.
	Environment []string
}

// InterfaceSpec describes the network setup applied before any rule.
type InterfaceSpec struct {
	// Namespace is the named network namespace the interfaces live in.
	// Empty means the namespace icewall runs in.
	Namespace         string
	Names             []string
	InterfaceCommands []string
	LayerCommands     []LayerCommand
}

// LayerCommand overwrites an existing control file with a literal value.
type LayerCommand struct {
	Pathname string
	Value    string
}

// RuleSpec is a named, ordered group of firewall commands.
type RuleSpec struct {
	Name     string
	Commands []string
}

// ProgramEnv returns the environment executed programs run with: DefaultPath
// followed by the configured entries. A configured PATH replaces the default.
func (c *Config) ProgramEnv() []string {
	env := make([]string, 0, len(c.Environment)+1)
	hasPath := false
	for _, e := range c.Environment {
		if strings.HasPrefix(e, "PATH=") {
			hasPath = true
		}
	}
	if !hasPath {
		env = append(env, DefaultPath)
	}
	return append(env, c.Environment...)
}

// CommandCount is the number of external programs the configuration runs.
func (c *Config) CommandCount() int {
	n := len(c.Network.InterfaceCommands)
	for _, r := range c.Rules {
		n += len(r.Commands)
	}
	return n
}
