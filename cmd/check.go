package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"grimm.is/icewall/internal/command"
	"grimm.is/icewall/internal/config"
)

// RunCheck loads and validates the configuration without touching the host.
func RunCheck(w io.Writer, configFile string, verbose bool) error {
	if err := requireConfigFile(configFile); err != nil {
		return err
	}

	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	Printer.Fprintf(w, "Configuration valid!\n")
	Printer.Fprintf(w, "Interfaces: %d\n", len(cfg.Network.Names))
	Printer.Fprintf(w, "Interface commands: %d\n", len(cfg.Network.InterfaceCommands))
	Printer.Fprintf(w, "Layer writes: %d\n", len(cfg.Network.LayerCommands))
	Printer.Fprintf(w, "Rules: %d\n", len(cfg.Rules))
	Printer.Fprintf(w, "Programs to run: %d\n", cfg.CommandCount())

	if verbose {
		Printer.Fprintln(w)
		printSummary(w, cfg)
	}
	return nil
}

func printSummary(w io.Writer, cfg *config.Config) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	namespace := cfg.Network.Namespace
	if namespace == "" {
		namespace = "-"
	}
	Printer.Fprintln(tw, "INTERFACE\tNAMESPACE")
	for _, name := range cfg.Network.Names {
		Printer.Fprintf(tw, "%s\t%s\n", name, namespace)
	}
	Printer.Fprintln(tw)

	Printer.Fprintln(tw, "STAGE\tPROGRAM\tARGS")
	for _, cmd := range cfg.Network.InterfaceCommands {
		printCommandRow(tw, "interface", cmd)
	}
	for _, r := range cfg.Rules {
		for _, cmd := range r.Commands {
			printCommandRow(tw, "rule "+r.Name, cmd)
		}
	}
	Printer.Fprintln(tw)

	Printer.Fprintln(tw, "LAYER\tVALUE")
	for _, l := range cfg.Network.LayerCommands {
		Printer.Fprintf(tw, "%s\t%q\n", l.Pathname, l.Value)
	}
	tw.Flush()

	if len(cfg.Environment) > 0 {
		Printer.Fprintf(w, "\nEnvironment: %s\n", strings.Join(cfg.ProgramEnv(), " "))
	}
}

func printCommandRow(w io.Writer, stage, cmd string) {
	parsed, err := command.Parse(cmd)
	if err != nil {
		Printer.Fprintf(w, "%s\t<%v>\t\n", stage, err)
		return
	}
	Printer.Fprintf(w, "%s\t%s\t%d\n", stage, parsed.Path, len(parsed.Argv)-1)
}
