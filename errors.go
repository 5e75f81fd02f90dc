package ddns

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrUpdateFailed is wrapped by the error returned from Report and Result.Err
// when at least one attempted address family did not update cleanly.
var ErrUpdateFailed = errors.New("one or more address updates failed")

// PermissionError reports a config file that other users are able to read.
type PermissionError struct {
	Path string
	Mode fs.FileMode
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("config file %q is world-readable (%s)", e.Path, e.Mode)
}

// ParseError reports a config file that could not be opened or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to load config from %s: %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a config value that was decoded but is not acceptable.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s in config: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q in config: %s", e.Field, e.Value, e.Reason)
}

type CredentialsError struct {
	Family Family
	Key    string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("missing %s in config", e.Key)
}

type TransportError struct {
	Family Family
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Family, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type StatusError struct {
	Family     Family
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected HTTP status %d", e.Family, e.StatusCode)
}

// DecodeError reports a response body that is not a JSON object.
type DecodeError struct {
	Family Family
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Family, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type APIError struct {
	Family  Family
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: provider error: %s", e.Family, e.Message)
}
