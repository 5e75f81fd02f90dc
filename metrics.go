package ddns

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteMetricsFile writes the outcome of one run in the Prometheus text format,
// for collection by node_exporter's textfile collector.
// The file is replaced atomically.
func WriteMetricsFile(path string, r Result, now time.Time) error {
	reg := prometheus.NewRegistry()

	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mbddns_updates_total",
		Help: "Update requests attempted in the last run.",
	}, []string{"family"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mbddns_update_failures_total",
		Help: "Update failures in the last run by reason.",
	}, []string{"family", "reason"})
	success := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mbddns_last_run_success",
		Help: "Whether every attempted update in the last run succeeded.",
	})
	timestamp := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mbddns_last_run_timestamp_seconds",
		Help: "Unix time the last run finished.",
	})
	reg.MustRegister(updates, failures, success, timestamp)

	for _, o := range r {
		updates.WithLabelValues(string(o.Family)).Inc()
		for _, err := range flatten(o.Err) {
			failures.WithLabelValues(string(o.Family), failureReason(err)).Inc()
		}
	}
	if !r.Failed() {
		success.Set(1)
	}
	timestamp.Set(float64(now.Unix()))

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("error writing metrics to %s: %w", path, err)
	}
	return nil
}

func failureReason(err error) string {
	var (
		transport *TransportError
		creds     *CredentialsError
		status    *StatusError
		decode    *DecodeError
		api       *APIError
	)
	switch {
	case errors.As(err, &transport):
		return "transport"
	case errors.As(err, &creds):
		return "credentials"
	case errors.As(err, &status):
		return "status"
	case errors.As(err, &decode):
		return "decode"
	case errors.As(err, &api):
		return "api"
	}
	return "other"
}
