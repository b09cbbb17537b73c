// Package pipeerror defines the error types surfaced by the analysis pipeline.
// Row-level data problems (bad dates, missing amounts) are handled in place
// and never reach these types; only batch-fatal conditions do.
package pipeerror

import "fmt"

// EmptyBatchError is returned when an import yields no usable rows. The
// pipeline refuses to run over an empty batch rather than emit empty
// summaries that would mask an upstream export problem.
type EmptyBatchError struct {
	Source string
}

func (e *EmptyBatchError) Error() string {
	if e.Source == "" {
		return "no valid transactions in batch"
	}
	return fmt.Sprintf("no valid transactions in batch from %s", e.Source)
}

// ConfigError reports missing or malformed rule/exclusion configuration.
// The pipeline cannot classify anything without it, so this is fatal.
type ConfigError struct {
	File   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration %s: %s: %v", e.File, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %s", e.File, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseError reports a failure to parse a specific field of an input row.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
