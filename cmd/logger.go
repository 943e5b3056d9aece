package cmd

import (
	"io"
	"os"

	"github.com/google/uuid"

	"grimm.is/icewall/internal/logging"
)

// LogOptions are the logging flags shared by subcommands.
type LogOptions struct {
	Level  string
	JSON   bool
	Syslog string
	Output io.Writer
}

// setupLogger builds the process logger and returns a function releasing
// the syslog connection, if any. A syslog failure is only a warning.
func setupLogger(opts LogOptions) (*logging.Logger, func(), error) {
	level, err := logging.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var syslogErr error
	closer := func() {}
	if opts.Syslog != "" {
		cfg, err := logging.ParseSyslogAddr(opts.Syslog)
		if err != nil {
			return nil, nil, err
		}
		w, err := logging.NewSyslogWriter(cfg)
		if err != nil {
			syslogErr = err
		} else {
			out = logging.MultiWriter(out, w)
			closer = func() { _ = w.Close() }
		}
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Output: out,
		JSON:   opts.JSON,
	})
	logging.SetDefault(logger)

	if syslogErr != nil {
		logger.Warn("remote syslog unavailable, logging locally only", "addr", opts.Syslog, "error", syslogErr)
	}
	return logger, closer, nil
}

// newRunID identifies one invocation in the logs.
func newRunID() string {
	return uuid.NewString()
}
