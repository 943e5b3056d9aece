package main

import (
	"errors"
	"flag"
	"os"

	"grimm.is/icewall/cmd"
	"grimm.is/icewall/internal/brand"
	"grimm.is/icewall/internal/i18n"
	"grimm.is/icewall/internal/osal"
)

var printer = i18n.NewCLIPrinter()

func main() {
	// The child branch of the secure executor re-enters here.
	if len(os.Args) > 1 && os.Args[1] == osal.ExecCommand && osal.IsChildProcess() {
		cmd.RunExecChild()
		return
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "apply":
		os.Exit(runApply(os.Args[2:]))

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		configFile := checkFlags.String("config", brand.DefaultConfigPath(), "Configuration file")
		checkFlags.StringVar(configFile, "c", brand.DefaultConfigPath(), "Configuration file (short)")
		verbose := checkFlags.Bool("verbose", false, "Verbose output")
		checkFlags.BoolVar(verbose, "v", false, "Verbose output (short)")
		checkFlags.Parse(os.Args[2:])

		if len(checkFlags.Args()) > 0 {
			*configFile = checkFlags.Arg(0)
		}

		if err := cmd.RunCheck(os.Stdout, *configFile, *verbose); err != nil {
			printer.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "plan":
		planFlags := flag.NewFlagSet("plan", flag.ExitOnError)
		configFile := planFlags.String("config", brand.DefaultConfigPath(), "Configuration file")
		planFlags.StringVar(configFile, "c", brand.DefaultConfigPath(), "Configuration file (short)")
		logLevel := planFlags.String("log-level", "warn", "Log level (debug, info, warn, error)")
		planFlags.Parse(os.Args[2:])

		if len(planFlags.Args()) > 0 {
			*configFile = planFlags.Arg(0)
		}

		err := cmd.RunPlan(os.Stdout, cmd.PlanOptions{
			ConfigFile: *configFile,
			Log:        cmd.LogOptions{Level: *logLevel},
		})
		if err != nil {
			printer.Fprintf(os.Stderr, "Plan failed: %v\n", err)
			os.Exit(1)
		}

	case "version", "-version", "--version":
		cmd.RunVersion(os.Stdout)

	case "help", "-h", "-help", "--help":
		printUsage()

	default:
		// bare "icewall -config FILE" is apply
		if len(os.Args[1]) > 0 && os.Args[1][0] == '-' {
			os.Exit(runApply(os.Args[1:]))
		}
		printer.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runApply(args []string) int {
	applyFlags := flag.NewFlagSet("apply", flag.ContinueOnError)
	configFile := applyFlags.String("config", "", "Configuration file (required)")
	applyFlags.StringVar(configFile, "c", "", "Configuration file (short)")
	logLevel := applyFlags.String("log-level", "info", "Log level (debug, info, warn, error)")
	jsonLogs := applyFlags.Bool("json-logs", false, "Log as JSON")
	syslog := applyFlags.String("syslog", "", "Also send logs to a remote syslog server (host[:port])")
	metricsFile := applyFlags.String("metrics-file", "", "Write Prometheus metrics to this textfile")
	noWait := applyFlags.Bool("no-wait", false, "Do not wait for interface commands to finish (unreaped until exit)")

	if err := applyFlags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	return cmd.RunApply(cmd.ApplyOptions{
		ConfigFile:  *configFile,
		MetricsFile: *metricsFile,
		NoWait:      *noWait,
		Log: cmd.LogOptions{
			Level:  *logLevel,
			JSON:   *jsonLogs,
			Syslog: *syslog,
		},
	})
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s -config <file> [options]
  %s <command> [options]

Commands:
  apply     Apply a configuration (default when only flags are given)
            Options: --config (-c) <file>, --log-level <level>, --json-logs,
                     --syslog <host[:port]>, --metrics-file <file>, --no-wait
  check     Validate a configuration file
            Options: --config (-c) <file>, --verbose (-v)
  plan      Show what apply would do without changing anything
            Options: --config (-c) <file>, --log-level <level>
  version   Show version information

Examples:
  %s -config /etc/icewall/icewall.json
  %s apply -c /etc/icewall/icewall.hcl --metrics-file /var/lib/node_exporter/icewall.prom
  %s check -v /etc/icewall/icewall.yaml
  %s plan -c /etc/icewall/icewall.json
`,
		brand.Name, brand.Description,
		brand.BinaryName, brand.BinaryName,
		brand.BinaryName, brand.BinaryName, brand.BinaryName, brand.BinaryName)
}
