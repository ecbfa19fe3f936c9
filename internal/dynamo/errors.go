package dynamo

import (
	"errors"
	"fmt"
)

// Configuration errors. The engine itself never fails at runtime; invalid
// inputs are clamped or ignored, so these only surface while loading
// configuration, presets and recorded runs.
var (
	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrNoData indicates a recording or sample stream with nothing in it.
	ErrNoData = errors.New("dynamo: no data")

	// ErrMalformedSample indicates a sensor line that could not be parsed.
	ErrMalformedSample = errors.New("dynamo: malformed sensor sample")
)

// ConfigError wraps an error with the offending field.
type ConfigError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
