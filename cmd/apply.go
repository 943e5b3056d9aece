package cmd

import (
	"os"

	"grimm.is/icewall/internal/config"
	"grimm.is/icewall/internal/executor"
	"grimm.is/icewall/internal/metrics"
	"grimm.is/icewall/internal/network"
	"grimm.is/icewall/internal/orchestrator"
	"grimm.is/icewall/internal/osal"
)

// ApplyOptions are the flags of the apply subcommand.
type ApplyOptions struct {
	ConfigFile  string
	MetricsFile string
	// NoWait starts interface commands without waiting for them. Nothing
	// reaps those children, so each stays a zombie until icewall exits.
	NoWait bool
	Log    LogOptions
}

// RunApply runs the pipeline against the host and returns the exit code.
func RunApply(opts ApplyOptions) int {
	if err := requireConfigFile(opts.ConfigFile); err != nil {
		Printer.Fprintf(os.Stderr, "%v\n", err)
		return int(orchestrator.Failure)
	}

	logger, closeLog, err := setupLogger(opts.Log)
	if err != nil {
		Printer.Fprintf(os.Stderr, "%v\n", err)
		return int(orchestrator.Failure)
	}
	defer closeLog()
	logger = logger.WithFields(map[string]any{"run_id": newRunID()})

	platform, err := osal.New()
	if err != nil {
		logger.Error("cannot create process platform", "error", err)
		return int(orchestrator.Failure)
	}

	var reg *metrics.Registry
	if opts.MetricsFile != "" {
		reg = metrics.NewRegistry()
	}

	runner := executor.New(platform, executor.Options{
		Logger: logger.WithComponent("executor"),
		OnExit: reg.ObserveExit,
	})

	flags := executor.DefaultFlags
	if opts.NoWait {
		flags &^= executor.WaitForCompletion
	}

	o := orchestrator.New(orchestrator.Params{
		Source:         config.NewFileSource(opts.ConfigFile),
		Interfaces:     network.NewInterfaceChecker(),
		Layers:         network.DefaultSystemController,
		Runner:         runner,
		Logger:         logger.WithComponent("orchestrator"),
		Metrics:        reg,
		InterfaceFlags: flags,
	})

	logger.Info("applying configuration", "config", opts.ConfigFile)
	status := o.ApplyConfig()

	if err := reg.WriteTextfile(opts.MetricsFile); err != nil {
		logger.Warn("cannot write metrics", "error", err)
	}
	return int(status)
}
