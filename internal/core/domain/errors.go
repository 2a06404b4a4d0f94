package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a 200 response whose expected top-level object
// is missing. Treated as "nothing to publish this cycle", not fatal.
var ErrMalformedResponse = errors.New("response missing expected payload")

// ConfigError is a hard precondition failure. No network call may be made
// once one is raised.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing or invalid config param %s", e.Field)
}

// TransportError covers timeouts, connection failures and non-2xx upstream
// responses. It aborts only the fetch branch it occurred on.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SchemaError covers store failures on existence checks and declarations.
// It aborts the whole run; the next scheduled invocation retries from a
// fresh ledger.
type SchemaError struct {
	Op  string
	Key string
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("store %s failed for %q: %v", e.Op, e.Key, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
