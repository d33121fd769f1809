package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration issue.
type ValidationError struct {
	Field   string
	Message string
	Fatal   bool // true = can't proceed, false = will be worked around
}

// ValidateConfig checks the loaded configuration for problems before a run.
func ValidateConfig(cfg *Config) []ValidationError {
	var errors []ValidationError

	if cfg.ConfDir == "" {
		errors = append(errors, ValidationError{
			Field:   "conf_dir",
			Message: "qemu-server config directory must not be empty",
			Fatal:   true,
		})
	}

	if _, err := strconv.Atoi(cfg.HWVersion); err != nil {
		errors = append(errors, ValidationError{
			Field:   "hw_version",
			Message: fmt.Sprintf("%q is not a numeric virtual hardware version", cfg.HWVersion),
			Fatal:   true,
		})
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errors = append(errors, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("unknown format %q, falling back to text", cfg.LogFormat),
			Fatal:   false,
		})
	}

	return errors
}

// HasFatal reports whether any validation error prevents a run.
func HasFatal(errors []ValidationError) bool {
	for _, e := range errors {
		if e.Fatal {
			return true
		}
	}
	return false
}

// FormatValidationErrors returns a human-readable error summary.
func FormatValidationErrors(errors []ValidationError) string {
	if len(errors) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Configuration problems:\n")
	for _, e := range errors {
		prefix := "Warning"
		if e.Fatal {
			prefix = "Error"
		}
		fmt.Fprintf(&b, "  %s [%s]: %s\n", prefix, e.Field, e.Message)
	}
	return b.String()
}
