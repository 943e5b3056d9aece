// Package orchestrator runs the apply pipeline: load the configuration,
// confirm the interfaces exist, run interface commands, write layer values
// and apply firewall rules, in that order. The first failure stops
// everything after it.
package orchestrator

import (
	"sort"
	"strings"
	"time"

	"grimm.is/icewall/internal/clock"
	"grimm.is/icewall/internal/command"
	"grimm.is/icewall/internal/config"
	"grimm.is/icewall/internal/errors"
	"grimm.is/icewall/internal/executor"
	"grimm.is/icewall/internal/firewall"
	"grimm.is/icewall/internal/logging"
	"grimm.is/icewall/internal/metrics"
	"grimm.is/icewall/internal/network"
)

// ConfigSource supplies a decoded configuration. Load errors should be
// *config.ConfigError.
type ConfigSource interface {
	Load() (*config.Config, error)
}

// SourceFunc adapts a function to ConfigSource.
type SourceFunc func() (*config.Config, error)

func (f SourceFunc) Load() (*config.Config, error) { return f() }

// InterfaceChecker reports whether an interface exists in a namespace.
type InterfaceChecker interface {
	HasInterface(namespace, name string) (bool, error)
}

// InterfaceLister is implemented by checkers that can also list what does
// exist. The list is attached to a missing-interface failure.
type InterfaceLister interface {
	Available(namespace string) ([]string, error)
}

// Status is the outcome of ApplyConfig. Its value is the process exit code.
type Status int

const (
	Success Status = 0
	Failure Status = 1
)

func (s Status) String() string {
	if s == Success {
		return "success"
	}
	return "failure"
}

// Params holds the capabilities the pipeline runs on. Source, Interfaces,
// Layers and Runner are required.
type Params struct {
	Source     ConfigSource
	Interfaces InterfaceChecker
	Layers     network.SystemController
	Runner     executor.Runner

	// Rules builds firewall rules. Nil builds them on Runner with the
	// configured program environment.
	Rules   firewall.RuleFactory
	Logger  *logging.Logger
	Metrics *metrics.Registry
	Clock   clock.Clock

	// InterfaceFlags apply to interface commands. Zero means
	// executor.DefaultFlags. Rules always run with the defaults.
	InterfaceFlags executor.Flags
}

// Report counts what a run got through before it finished or failed.
type Report struct {
	Interfaces        int
	InterfaceCommands int
	LayerWrites       int
	Rules             int
}

// Orchestrator is the NetworkOrchestrator pipeline.
type Orchestrator struct {
	p      Params
	logger *logging.Logger
	report Report
}

// New creates an Orchestrator.
func New(p Params) *Orchestrator {
	if p.Logger == nil {
		p.Logger = logging.WithComponent("orchestrator")
	}
	if p.Clock == nil {
		p.Clock = &clock.RealClock{}
	}
	if p.InterfaceFlags == 0 {
		p.InterfaceFlags = executor.DefaultFlags
	}
	return &Orchestrator{p: p, logger: p.Logger}
}

// Report returns the counts of the last run.
func (o *Orchestrator) Report() Report {
	return o.report
}

// ApplyConfig runs the pipeline, logs any failure with its attributes and
// converts the outcome to a Status.
func (o *Orchestrator) ApplyConfig() Status {
	start := o.p.Clock.Now()
	err := o.Apply()
	took := o.p.Clock.Since(start)
	o.p.Metrics.RunFinished(o.p.Clock.Now(), took, err == nil)

	if err != nil {
		o.logger.Error("apply failed", failureArgs(err)...)
		return Failure
	}
	o.logger.Info("apply complete",
		"interfaces", o.report.Interfaces,
		"interface_commands", o.report.InterfaceCommands,
		"layer_writes", o.report.LayerWrites,
		"rules", o.report.Rules,
		"took", took.Round(time.Millisecond).String())
	return Success
}

func failureArgs(err error) []any {
	args := []any{"error", err.Error(), "kind", errors.GetKind(err).String()}
	attrs := errors.GetAttributes(err)
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k, attrs[k])
	}
	return args
}

// Apply runs the pipeline and returns the first error.
func (o *Orchestrator) Apply() error {
	o.report = Report{}

	o.logger.Debug("loading configuration")
	cfg, err := o.load()
	if err != nil {
		return err
	}
	env := cfg.ProgramEnv()

	o.logger.Debug("checking interfaces", "count", len(cfg.Network.Names), "namespace", cfg.Network.Namespace)
	if err := o.checkInterfaces(cfg.Network); err != nil {
		return err
	}

	o.logger.Debug("running interface commands", "count", len(cfg.Network.InterfaceCommands))
	ifaceRunner := &countingRunner{Runner: o.p.Runner, stage: metrics.StageInterface, metrics: o.p.Metrics}
	if err := o.runInterfaceCommands(ifaceRunner, cfg.Network.InterfaceCommands, env); err != nil {
		return err
	}

	o.logger.Debug("writing layers", "count", len(cfg.Network.LayerCommands))
	if err := o.writeLayers(cfg.Network.LayerCommands); err != nil {
		return err
	}

	o.logger.Debug("applying rules", "count", len(cfg.Rules))
	return o.applyRules(cfg.Rules, env)
}

func (o *Orchestrator) load() (*config.Config, error) {
	cfg, err := o.p.Source.Load()
	if err == nil {
		return cfg, nil
	}

	var cerr *config.ConfigError
	if !errors.As(err, &cerr) {
		return nil, errors.Wrap(err, errors.KindConfig, "cannot load configuration")
	}

	var kind errors.Kind
	switch cerr.Kind {
	case config.NotFound:
		kind = errors.KindNotFound
	case config.Unreadable:
		kind = errors.KindIO
	case config.Invalid:
		kind = errors.KindValidation
	case config.Malformed, config.UnsupportedSource:
		kind = errors.KindConfig
	default:
		kind = errors.KindInternal
	}
	err = errors.Wrap(err, kind, "cannot load configuration")
	err = errors.Attr(err, "config", cerr.Path)
	return nil, errors.Attr(err, "config_error", cerr.Kind.String())
}

func (o *Orchestrator) checkInterfaces(n config.InterfaceSpec) error {
	for _, name := range n.Names {
		ok, err := o.p.Interfaces.HasInterface(n.Namespace, name)
		if err != nil {
			err = errors.Wrapf(err, errors.KindIO, "cannot check interface %s", name)
			return errors.Attr(err, "interface", name)
		}
		if !ok {
			err := errors.Errorf(errors.KindValidation, "interface %s does not exist", name)
			if n.Namespace != "" {
				err = errors.Attr(err, "namespace", n.Namespace)
			}
			if names, ok := o.available(n.Namespace); ok {
				err = errors.Attr(err, "available", names)
			}
			return errors.Attr(err, "interface", name)
		}
		o.logger.Debug("interface present", "interface", name)
		o.report.Interfaces++
	}
	return nil
}

func (o *Orchestrator) available(namespace string) (string, bool) {
	l, ok := o.p.Interfaces.(InterfaceLister)
	if !ok {
		return "", false
	}
	names, err := l.Available(namespace)
	if err != nil {
		o.logger.Debug("cannot list interfaces", "error", err)
		return "", false
	}
	return strings.Join(names, ","), true
}

func (o *Orchestrator) runInterfaceCommands(runner executor.Runner, commands, env []string) error {
	for i, cmd := range commands {
		parsed, err := command.Parse(cmd)
		if err != nil {
			err = errors.Wrapf(err, errors.KindInvalidInput, "cannot parse interface command %d", i)
			return errors.Attr(err, "command", cmd)
		}

		o.logger.Info("running interface command", "command", parsed.String())
		if err := runner.ExecuteProgram(parsed.Path, parsed.Argv, env, o.p.InterfaceFlags); err != nil {
			err = errors.Wrapf(err, errors.GetKind(err), "interface command %d failed", i)
			return errors.Attr(err, "command", cmd)
		}
		o.report.InterfaceCommands++
	}
	return nil
}

func (o *Orchestrator) writeLayers(layers []config.LayerCommand) error {
	for _, l := range layers {
		err := o.p.Layers.WriteLayer(l.Pathname, l.Value)
		o.p.Metrics.LayerWrite(err)
		if err != nil {
			if o.p.Layers.IsNotExist(err) {
				err = errors.Wrapf(err, errors.KindConfig, "control file %s does not exist", l.Pathname)
			} else {
				err = errors.Wrapf(err, errors.KindIO, "cannot write %s", l.Pathname)
			}
			return errors.Attr(err, "pathname", l.Pathname)
		}
		o.logger.Audit("write", l.Pathname, map[string]any{"value": l.Value})
		o.report.LayerWrites++
	}
	return nil
}

func (o *Orchestrator) applyRules(rules []config.RuleSpec, env []string) error {
	factory := o.p.Rules
	if factory == nil {
		runner := &countingRunner{Runner: o.p.Runner, stage: metrics.StageRule, metrics: o.p.Metrics}
		factory = firewall.NewRuleFactory(runner, env, o.logger.WithComponent("firewall"))
	}

	for _, spec := range rules {
		rule := factory.CreateRule(spec.Name, spec.Commands)
		o.logger.Info("applying rule", "rule", spec.Name, "commands", len(spec.Commands))

		err := rule.ApplyCommands()
		o.p.Metrics.RuleApplied(err)
		if err != nil {
			return err
		}
		o.report.Rules++
	}
	return nil
}

// countingRunner records every execution in the metrics registry.
type countingRunner struct {
	executor.Runner
	stage   string
	metrics *metrics.Registry
}

func (r *countingRunner) ExecuteProgram(path string, argv, env []string, flags executor.Flags) error {
	err := r.Runner.ExecuteProgram(path, argv, env, flags)
	r.metrics.CommandRun(r.stage, err)
	return err
}
