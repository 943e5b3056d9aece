// Package firewall applies firewall policy as named groups of commands.
//
// A Rule does not know what its commands do: iptables, nft or anything
// else on the host. It parses each command string and runs it through an
// executor.Runner with every hardening flag set, stopping at the first
// failure.
package firewall

import (
	"grimm.is/icewall/internal/command"
	"grimm.is/icewall/internal/errors"
	"grimm.is/icewall/internal/executor"
	"grimm.is/icewall/internal/logging"
)

// Rule is a named, ordered group of command strings.
type Rule struct {
	Name     string
	Commands []string

	runner executor.Runner
	env    []string
	logger *logging.Logger
}

// ApplyCommands parses and executes every command in order with
// executor.DefaultFlags. The first failure stops the rule; commands already
// run are not undone.
func (r *Rule) ApplyCommands() error {
	for i, cmd := range r.Commands {
		parsed, err := command.Parse(cmd)
		if err != nil {
			return r.fail(err, i, cmd, "cannot parse command")
		}

		r.logger.Debug("running rule command", "rule", r.Name, "index", i, "command", parsed.String())
		if err := r.runner.ExecuteProgram(parsed.Path, parsed.Argv, r.env, executor.DefaultFlags); err != nil {
			return r.fail(err, i, cmd, "cannot run command")
		}
	}
	return nil
}

func (r *Rule) fail(err error, index int, cmd, msg string) error {
	err = errors.Wrapf(err, errors.GetKind(err), "rule %s: %s %d", r.Name, msg, index)
	err = errors.Attr(err, "rule", r.Name)
	err = errors.Attr(err, "index", index)
	return errors.Attr(err, "command", cmd)
}

// RuleFactory builds rules from configuration entries.
type RuleFactory interface {
	CreateRule(name string, commands []string) *Rule
}

// Factory is the RuleFactory used by the apply pipeline. Every rule it
// creates shares one runner and one program environment.
type Factory struct {
	runner executor.Runner
	env    []string
	logger *logging.Logger
}

// NewRuleFactory creates a Factory. A nil logger uses the default one.
func NewRuleFactory(runner executor.Runner, env []string, logger *logging.Logger) *Factory {
	if logger == nil {
		logger = logging.WithComponent("firewall")
	}
	return &Factory{runner: runner, env: env, logger: logger}
}

// CreateRule only constructs the rule. Nothing runs until ApplyCommands.
func (f *Factory) CreateRule(name string, commands []string) *Rule {
	return &Rule{
		Name:     name,
		Commands: commands,
		runner:   f.runner,
		env:      f.env,
		logger:   f.logger,
	}
}
