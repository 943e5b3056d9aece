// Package cmd implements the icewall subcommands. Every Run* function
// returns the process exit code, or an error for main to report.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"grimm.is/icewall/internal/brand"
	"grimm.is/icewall/internal/i18n"
)

// Printer is the localized printer for CLI output.
var Printer = i18n.NewCLIPrinter()

// ErrUsage marks errors caused by how icewall was invoked.
var ErrUsage = errors.New("usage error")

// requireConfigFile makes a missing or nonexistent configuration file a
// usage error before any pipeline logic runs.
func requireConfigFile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: -config is required\nExample: %s -config %s", ErrUsage, brand.BinaryName, brand.DefaultConfigPath())
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: configuration file %s: %v", ErrUsage, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: configuration file %s is a directory", ErrUsage, path)
	}
	return nil
}
