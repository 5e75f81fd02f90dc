package ddns_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	ddns "github.com/Travis-Britz/mbddns"
	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestReport(t *testing.T) {
	tests := []struct {
		name       string
		result     ddns.Result
		wantStdout string
		wantStderr string
		wantErr    bool
	}{
		{
			name: "message",
			result: ddns.Result{
				{Family: ddns.IPv4, StatusCode: 200, Reply: &ddns.Reply{StatusCode: 200, Message: strptr("ok")}},
			},
			wantStdout: "[ipv4] ok\n",
		},
		{
			name: "provider error",
			result: ddns.Result{
				{
					Family: ddns.IPv4, StatusCode: 200,
					Reply: &ddns.Reply{StatusCode: 200, Error: strptr("bad auth")},
					Err:   &ddns.APIError{Family: ddns.IPv4, Message: "bad auth"},
				},
			},
			wantStderr: "[ipv4] Error updating address: bad auth\n",
			wantErr:    true,
		},
		{
			name: "status with message and error",
			result: ddns.Result{
				{
					Family: ddns.IPv6, StatusCode: 401,
					Reply: &ddns.Reply{StatusCode: 401, Message: strptr("see docs"), Error: strptr("invalid credentials")},
					Err: errors.Join(
						&ddns.StatusError{Family: ddns.IPv6, StatusCode: 401},
						&ddns.APIError{Family: ddns.IPv6, Message: "invalid credentials"},
					),
				},
			},
			wantStdout: "[ipv6] see docs\n",
			wantStderr: "[ipv6] Error updating address, HTTP status 401\n" +
				"[ipv6] Error updating address: invalid credentials\n",
			wantErr: true,
		},
		{
			name: "status with undecodable body",
			result: ddns.Result{
				{
					Family: ddns.IPv4, StatusCode: 502,
					Reply: &ddns.Reply{StatusCode: 502},
					Err: errors.Join(
						&ddns.StatusError{Family: ddns.IPv4, StatusCode: 502},
						&ddns.DecodeError{Family: ddns.IPv4, Err: errors.New("invalid character '<' looking for beginning of value")},
					),
				},
			},
			wantStderr: "[ipv4] Error updating address, HTTP status 502\n" +
				"[ipv4] Failed decoding response: invalid character '<' looking for beginning of value\n",
			wantErr: true,
		},
		{
			name: "transport failure then success",
			result: ddns.Result{
				{Family: ddns.IPv4, Err: &ddns.TransportError{Family: ddns.IPv4, Err: errors.New("connection refused")}},
				{Family: ddns.IPv6, StatusCode: 200, Reply: &ddns.Reply{StatusCode: 200, Message: strptr("ok")}},
			},
			wantStdout: "[ipv6] ok\n",
			wantStderr: "[ipv4] Failed updating address: connection refused\n",
			wantErr:    true,
		},
		{
			name: "missing credentials",
			result: ddns.Result{
				{Family: ddns.IPv6, Err: &ddns.CredentialsError{Family: ddns.IPv6, Key: "secret"}},
			},
			wantStderr: "[ipv6] Failed updating address: missing secret in config\n",
			wantErr:    true,
		},
		{
			name: "unclassified error",
			result: ddns.Result{
				{Family: ddns.IPv4, Err: fmt.Errorf("something else")},
			},
			wantStderr: "[ipv4] Failed updating address: something else\n",
			wantErr:    true,
		},
		{
			name: "reply without fields",
			result: ddns.Result{
				{Family: ddns.IPv4, StatusCode: 200, Reply: &ddns.Reply{StatusCode: 200}},
			},
		},
		{
			name: "nothing attempted",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := ddns.Report(&stdout, &stderr, tt.result)

			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
			if tt.wantErr {
				assert.ErrorIs(t, err, ddns.ErrUpdateFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
