// Package plugconf configures logging-pipeline plugins from XML documents.
// This file defines error types and structures for detailed error reporting
// across the configuration entry points.
package plugconf

import (
	"fmt"
	"strings"
)

// ErrorKind represents the category of configuration errors.
// It classifies the failures that can occur while fetching, parsing and
// applying a configuration document.
type ErrorKind int

const (
	// KindUnknown represents an unclassified error
	KindUnknown ErrorKind = iota
	// KindParseFailure indicates the configuration document could not be parsed
	KindParseFailure
	// KindFetchFailure indicates the configuration source could not be read
	KindFetchFailure
	// KindPluginFailure indicates failure in plugin construction or binding
	KindPluginFailure
	// KindWatchFailure indicates failure in file watching functionality
	KindWatchFailure
)

// String returns the string representation of the error kind.
func (ek ErrorKind) String() string {
	switch ek {
	case KindParseFailure:
		return "ParseFailure"
	case KindFetchFailure:
		return "FetchFailure"
	case KindPluginFailure:
		return "PluginFailure"
	case KindWatchFailure:
		return "WatchFailure"
	default:
		return "Unknown"
	}
}

// ConfigError represents a structured configuration error with detailed
// context: the kind of failure, the source it originated from (file path,
// URL), a descriptive message and the underlying cause.
type ConfigError struct {
	// Kind categorizes the failure
	Kind ErrorKind
	// Source identifies where the error originated (file path, URL, etc.)
	Source string
	// Message provides a human-readable description of the error
	Message string
	// Cause holds the underlying error that triggered this configuration error
	Cause error
}

// Error implements the error interface by returning a formatted error message.
func (e *ConfigError) Error() string {
	var parts []string

	if e.Kind != KindUnknown {
		parts = append(parts, fmt.Sprintf("[%s]", e.Kind.String()))
	}

	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is matches two ConfigErrors by kind.
func (e *ConfigError) Is(target error) bool {
	if ce, ok := target.(*ConfigError); ok {
		return e.Kind == ce.Kind
	}
	return false
}

// NewConfigError creates a new configuration error.
func NewConfigError(kind ErrorKind, source, message string, cause error) *ConfigError {
	return &ConfigError{
		Kind:    kind,
		Source:  source,
		Message: message,
		Cause:   cause,
	}
}

// Convenience constructors per kind

// NewParseError creates a parse failure error.
func NewParseError(source, message string, cause error) *ConfigError {
	return NewConfigError(KindParseFailure, source, message, cause)
}

// NewFetchError creates a fetch failure error.
func NewFetchError(source, message string, cause error) *ConfigError {
	return NewConfigError(KindFetchFailure, source, message, cause)
}

// NewWatchError creates a watch failure error.
func NewWatchError(source, message string, cause error) *ConfigError {
	return NewConfigError(KindWatchFailure, source, message, cause)
}
