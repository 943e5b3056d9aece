package config

import (
	"errors"
	"fmt"
	"strings"

	"grimm.is/icewall/internal/validation"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

func (e *ValidationErrors) add(field string, err error) {
	if err != nil {
		*e = append(*e, ValidationError{Field: field, Message: err.Error()})
	}
}

var errEmptyRuleName = errors.New("rule name is required")

// Validate checks cfg for values that cannot work at apply time. It returns
// ValidationErrors, or nil when the configuration is usable.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	n := cfg.Network
	if n.Namespace != "" {
		errs.add("network.namespace", validation.ValidateIdentifier(n.Namespace))
	}
	for i, name := range n.Names {
		errs.add(fmt.Sprintf("network.interfaceNames[%d]", i), validation.ValidateInterfaceName(name))
	}
	for i, cmd := range n.InterfaceCommands {
		errs.add(fmt.Sprintf("network.interfaceCommands[%d]", i), validation.ValidateCommand(cmd))
	}
	for i, l := range n.LayerCommands {
		errs.add(fmt.Sprintf("network.layerCommands[%d].pathname", i), validation.ValidateControlPath(l.Pathname))
	}

	// rule names are labels for logs; any non-blank text will do
	for i, r := range cfg.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		if strings.TrimSpace(r.Name) == "" {
			errs.add(field+".name", errEmptyRuleName)
		}
		for j, cmd := range r.Commands {
			errs.add(fmt.Sprintf("%s.commands[%d]", field, j), validation.ValidateCommand(cmd))
		}
	}

	for i, e := range cfg.Environment {
		errs.add(fmt.Sprintf("environment[%d]", i), validation.ValidateEnvEntry(e))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
