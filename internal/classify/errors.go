package classify

import (
	"errors"
	"fmt"
)

// ErrConfigInvalid is wrapped by every rule validation failure.
var ErrConfigInvalid = errors.New("invalid classification config")

// ConfigError names the offending rule. It matches ErrConfigInvalid with
// errors.Is.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfigInvalid, e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfigInvalid
}
