package ddns_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	ddns "github.com/Travis-Britz/mbddns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mbddns.prom")
	result := ddns.Result{
		{Family: ddns.IPv4, StatusCode: 200, Reply: &ddns.Reply{StatusCode: 200}},
		{Family: ddns.IPv6, StatusCode: 403, Err: errors.Join(
			&ddns.StatusError{Family: ddns.IPv6, StatusCode: 403},
			&ddns.APIError{Family: ddns.IPv6, Message: "forbidden"},
		)},
	}

	err := ddns.WriteMetricsFile(path, result, time.Unix(1700000000, 0))

	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `mbddns_updates_total{family="ipv4"} 1`)
	assert.Contains(t, out, `mbddns_updates_total{family="ipv6"} 1`)
	assert.Contains(t, out, `mbddns_update_failures_total{family="ipv6",reason="status"} 1`)
	assert.Contains(t, out, `mbddns_update_failures_total{family="ipv6",reason="api"} 1`)
	assert.NotContains(t, out, `mbddns_update_failures_total{family="ipv4"`)
	assert.Contains(t, out, "mbddns_last_run_success 0")
	assert.Contains(t, out, "mbddns_last_run_timestamp_seconds 1.7e+09")
}

func TestWriteMetricsFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mbddns.prom")

	err := ddns.WriteMetricsFile(path, ddns.Result{{Family: ddns.IPv4, StatusCode: 200}}, time.Unix(0, 0))

	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "mbddns_last_run_success 1")
}

func TestWriteMetricsFile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "mbddns.prom")

	err := ddns.WriteMetricsFile(path, nil, time.Now())

	assert.ErrorContains(t, err, "error writing metrics")
}
