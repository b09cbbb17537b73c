package pipeerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyBatchError(t *testing.T) {
	assert.Equal(t, "no valid transactions in batch", (&EmptyBatchError{}).Error())
	assert.Equal(t, "no valid transactions in batch from export.csv",
		(&EmptyBatchError{Source: "export.csv"}).Error())
}

func TestConfigError(t *testing.T) {
	plain := &ConfigError{File: "rules.yaml", Reason: "rules file contains no rules"}
	assert.Equal(t, "invalid configuration rules.yaml: rules file contains no rules", plain.Error())
	assert.Nil(t, errors.Unwrap(plain))

	cause := errors.New("permission denied")
	wrapped := &ConfigError{File: "rules.yaml", Reason: "rules file unreadable", Err: cause}
	assert.Contains(t, wrapped.Error(), "permission denied")
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}

func TestConfigErrorMatchesThroughWrapping(t *testing.T) {
	inner := &ConfigError{File: "rules.yaml", Reason: "rules file malformed"}
	outer := fmt.Errorf("loading configuration: %w", inner)

	var cfgErr *ConfigError
	assert.True(t, errors.As(outer, &cfgErr))
	assert.Equal(t, "rules.yaml", cfgErr.File)
}

func TestParseError(t *testing.T) {
	cause := errors.New("invalid syntax")
	err := &ParseError{Field: "amount", Value: "abc", Err: cause}
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "abc")
	assert.Equal(t, cause, errors.Unwrap(err))
}
