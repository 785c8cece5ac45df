package config

import (
	"errors"
	"fmt"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to JSON/TOML syntax, filesystem, or other loading errors).
// Callers can use errors.Is(err, ErrConfigValidation) to tell them apart.
var ErrConfigValidation = errors.New(messages.ConfigValidationFailed)

// ErrRootUnresolved reports that neither installer-paths nor drupal_root names the Drupal root.
var ErrRootUnresolved = errors.New(messages.ConfigRootUnresolved)

// ConfigurationError reports a setting that is missing or cannot be used.
// Key names the setting as it appears in composer.json or dmi.toml.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(messages.ConfigurationErrorFmt, e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
