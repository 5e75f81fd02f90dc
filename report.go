package ddns

import (
	"errors"
	"fmt"
	"io"
)

// Report writes one line per event of each outcome, tagged with its family:
// informational messages go to stdout and every failure to stderr.
// It returns r.Err().
func Report(stdout, stderr io.Writer, r Result) error {
	for _, o := range r {
		reportOutcome(stdout, stderr, o)
	}
	return r.Err()
}

func reportOutcome(stdout, stderr io.Writer, o Outcome) {
	var (
		transport *TransportError
		creds     *CredentialsError
		status    *StatusError
		decode    *DecodeError
		api       *APIError
	)
	for _, err := range flatten(o.Err) {
		switch {
		case errors.As(err, &transport):
			fmt.Fprintf(stderr, "[%s] Failed updating address: %s\n", o.Family, transport.Err)
		case errors.As(err, &creds):
			fmt.Fprintf(stderr, "[%s] Failed updating address: %s\n", o.Family, creds)
		case errors.As(err, &status):
			fmt.Fprintf(stderr, "[%s] Error updating address, HTTP status %d\n", o.Family, status.StatusCode)
		case errors.As(err, &decode):
			fmt.Fprintf(stderr, "[%s] Failed decoding response: %s\n", o.Family, decode.Err)
		case errors.As(err, &api):
			fmt.Fprintf(stderr, "[%s] Error updating address: %s\n", o.Family, api.Message)
		default:
			fmt.Fprintf(stderr, "[%s] Failed updating address: %s\n", o.Family, err)
		}
	}
	if o.Reply != nil && o.Reply.Message != nil {
		fmt.Fprintf(stdout, "[%s] %s\n", o.Family, *o.Reply.Message)
	}
}

func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
