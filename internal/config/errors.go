package config

import "fmt"

// ErrorKind classifies a failed load.
type ErrorKind int

const (
	// NotFound means the configuration file does not exist.
	NotFound ErrorKind = iota + 1
	// Unreadable means the file exists but could not be read.
	Unreadable
	// Malformed means the content could not be decoded.
	Malformed
	// Invalid means the content decoded but violates the schema.
	Invalid
	// UnsupportedSource means no loader handles this kind of source.
	UnsupportedSource
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Unreadable:
		return "unreadable"
	case Malformed:
		return "malformed"
	case Invalid:
		return "invalid"
	case UnsupportedSource:
		return "unsupported source"
	default:
		return "unknown"
	}
}

// ConfigError is the failure half of a load result.
type ConfigError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("config %s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("config %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
