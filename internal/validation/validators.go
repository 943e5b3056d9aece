package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Valid interface name: alphanumeric, dash, underscore, dot (for VLANs), max 15 chars
	interfaceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,15}$`)

	// Valid identifier: alphanumeric, dash, underscore
	identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// Environment variable names as accepted by POSIX shells
	envNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

	// Dangerous characters that should never appear in identifiers
	dangerousChars = []string{";", "|", "&", "$", "`", "(", ")", "<", ">", "\\", "\"", "'", "\n", "\r"}
)

// ValidateInterfaceName validates a network interface name
func ValidateInterfaceName(name string) error {
	if name == "" {
		return fmt.Errorf("interface name cannot be empty")
	}

	if len(name) > 15 {
		return fmt.Errorf("interface name too long (max 15 characters): %s", name)
	}

	if !interfaceNameRegex.MatchString(name) {
		return fmt.Errorf("invalid interface name: %s (must be alphanumeric with -_.)", name)
	}

	for _, char := range dangerousChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("interface name contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateIdentifier validates a general identifier (rule names, namespaces)
func ValidateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("identifier cannot be empty")
	}

	if len(id) > 255 {
		return fmt.Errorf("identifier too long (max 255 characters)")
	}

	if !identifierRegex.MatchString(id) {
		return fmt.Errorf("invalid identifier: %s (must be alphanumeric with -_)", id)
	}

	return nil
}

// ValidateControlPath validates the target of a layer command. Control files
// are addressed by absolute path only; relative paths would resolve against
// whatever directory the tool happens to be started from.
func ValidateControlPath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("null byte in path")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	for _, elem := range strings.Split(path, "/") {
		if elem == ".." {
			return fmt.Errorf("path traversal not allowed: %s", path)
		}
	}

	return nil
}

// ValidateCommand validates a command string before it is split.
// Shell metacharacters are allowed: nothing interprets them.
func ValidateCommand(cmd string) error {
	if cmd == "" {
		return fmt.Errorf("command cannot be empty")
	}

	if strings.Contains(cmd, "\x00") {
		return fmt.Errorf("null byte in command")
	}

	if strings.ContainsAny(cmd, "\n\r") {
		return fmt.Errorf("command spans multiple lines")
	}

	return nil
}

// ValidateEnvEntry validates a KEY=VALUE environment entry.
func ValidateEnvEntry(entry string) error {
	key, _, ok := strings.Cut(entry, "=")
	if !ok {
		return fmt.Errorf("environment entry must be KEY=VALUE: %s", entry)
	}

	if !envNameRegex.MatchString(key) {
		return fmt.Errorf("invalid environment variable name: %q", key)
	}

	if strings.Contains(entry, "\x00") {
		return fmt.Errorf("null byte in environment entry")
	}

	return nil
}
