package config

import "fmt"

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType int

const (
	// ConfigInvalid indicates a .env file or a path setting could not be parsed.
	ConfigInvalid ConfigErrorType = iota
	// ConfigValidationFailed indicates a resolved value is out of range.
	ConfigValidationFailed
)

// ConfigError reports a bad setting. Key names the environment variable;
// Source is the .env file involved, empty when the value may have come from
// any layer.
type ConfigError struct {
	Type    ConfigErrorType
	Key     string
	Source  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var msg string
	switch {
	case e.Key != "" && e.Source != "":
		msg = fmt.Sprintf("%s in %s: %s", e.Key, e.Source, e.Message)
	case e.Key != "":
		msg = fmt.Sprintf("%s: %s", e.Key, e.Message)
	case e.Source != "":
		msg = fmt.Sprintf("%s: %s", e.Source, e.Message)
	default:
		msg = e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return "invalid configuration: " + msg
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func invalidValue(key, message string) *ConfigError {
	return &ConfigError{Type: ConfigValidationFailed, Key: key, Message: message}
}

func unreadableEnvFile(path string, cause error) *ConfigError {
	return &ConfigError{Type: ConfigInvalid, Source: path, Message: "cannot parse .env file", Cause: cause}
}
