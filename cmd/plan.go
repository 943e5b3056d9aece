package cmd

import (
	"fmt"
	"io"
	"strings"

	"grimm.is/icewall/internal/config"
	"grimm.is/icewall/internal/errors"
	"grimm.is/icewall/internal/executor"
	"grimm.is/icewall/internal/firewall"
	"grimm.is/icewall/internal/network"
	"grimm.is/icewall/internal/orchestrator"
)

// PlanOptions are the flags of the plan subcommand.
type PlanOptions struct {
	ConfigFile string
	Log        LogOptions
	// Interfaces overrides the kernel interface checker.
	Interfaces orchestrator.InterfaceChecker
}

// RunPlan runs the pipeline without changing the host. Interface checks are
// real, commands are recorded and layer writes are shown as diffs.
func RunPlan(w io.Writer, opts PlanOptions) error {
	if err := requireConfigFile(opts.ConfigFile); err != nil {
		return err
	}

	if opts.Log.Level == "" {
		opts.Log.Level = "warn"
	}
	logger, closeLog, err := setupLogger(opts.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.LoadFile(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	interfaces := opts.Interfaces
	if interfaces == nil {
		interfaces = network.NewInterfaceChecker()
	}

	ifaceRunner := executor.NewDryRun()
	ruleRunner := executor.NewDryRun()
	layers := network.NewDryRunSystemController(network.DefaultSystemController)

	// rule runner is separate so the output can group commands by rule
	var rules []plannedRule
	factory := &planFactory{
		Factory: firewall.NewRuleFactory(ruleRunner, cfg.ProgramEnv(), logger.WithComponent("firewall")),
		runner:  ruleRunner,
		rules:   &rules,
	}

	o := orchestrator.New(orchestrator.Params{
		Source:     orchestrator.SourceFunc(func() (*config.Config, error) { return cfg, nil }),
		Interfaces: interfaces,
		Layers:     layers,
		Runner:     ifaceRunner,
		Rules:      factory,
		Logger:     logger.WithComponent("plan"),
	})
	applyErr := o.Apply()

	Printer.Fprintln(w, styleHeader.Render("Interfaces"))
	for i, name := range cfg.Network.Names {
		var mark string
		switch checked := o.Report().Interfaces; {
		case i < checked:
			mark = styleGood.Render("present")
		case i == checked && applyErr != nil:
			mark = styleBad.Render("failed")
		default:
			mark = styleMuted.Render("not checked")
		}
		Printer.Fprintf(w, "%s %s\n", styleCommand.Render(name), mark)
	}
	if available, ok := errors.GetAttributes(applyErr)["available"].(string); ok {
		Printer.Fprintf(w, "%s %s\n", styleMuted.Render("Available:"), available)
	}

	Printer.Fprintln(w, styleHeader.Render("Interface commands"))
	printCommands(w, ifaceRunner.Commands)

	Printer.Fprintln(w, styleHeader.Render("Layer writes"))
	for _, lw := range layers.Writes {
		if !lw.Changed() {
			Printer.Fprintf(w, "%s %s\n", styleCommand.Render(lw.Path), styleMuted.Render("unchanged"))
			continue
		}
		Printer.Fprint(w, colorDiff(lw.Diff()))
	}

	Printer.Fprintln(w, styleHeader.Render("Rules"))
	for i, r := range rules {
		end := len(ruleRunner.Commands)
		if i+1 < len(rules) {
			end = rules[i+1].first
		}
		Printer.Fprintln(w, styleCommand.Render(r.name))
		printCommands(w, ruleRunner.Commands[r.first:end])
	}

	if applyErr != nil {
		Printer.Fprintln(w, styleBad.Render("Plan failed: "+applyErr.Error()))
		return applyErr
	}
	Printer.Fprintln(w, styleGood.Render(fmt.Sprintf("Plan complete: %d programs would run", len(ifaceRunner.Commands)+len(ruleRunner.Commands))))
	return nil
}

func printCommands(w io.Writer, commands []string) {
	if len(commands) == 0 {
		Printer.Fprintln(w, styleCommand.Render(styleMuted.Render("(none)")))
		return
	}
	for _, c := range commands {
		Printer.Fprintln(w, styleCommand.Render("$ "+c))
	}
}

func colorDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"), strings.HasPrefix(text, "@@"):
			text = styleMuted.Render(text)
		case strings.HasPrefix(text, "+"):
			text = styleAdded.Render(text)
		case strings.HasPrefix(text, "-"):
			text = styleRemoved.Render(text)
		}
		b.WriteString(styleCommand.Render(text))
		b.WriteString("\n")
	}
	return b.String()
}

// plannedRule remembers which recorded commands belong to a rule.
type plannedRule struct {
	name  string
	first int
}

// planFactory records rule boundaries while delegating construction.
type planFactory struct {
	*firewall.Factory
	runner *executor.DryRun
	rules  *[]plannedRule
}

func (f *planFactory) CreateRule(name string, commands []string) *firewall.Rule {
	*f.rules = append(*f.rules, plannedRule{name: name, first: len(f.runner.Commands)})
	return f.Factory.CreateRule(name, commands)
}
