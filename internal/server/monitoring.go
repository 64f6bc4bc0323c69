package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const monitoringReadTimeout = 5

// MonitoringHandler serves /metrics from reg and /healthz from health.
func MonitoringHandler(reg *prometheus.Registry, health http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true, Registry: reg}))
	mux.Handle("/healthz", health)

	return mux
}

// StartMonitoringServer serves metrics and health checks on port until ctx is cancelled.
func StartMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	health http.Handler,
	port int,
) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           MonitoringHandler(reg, health),
		ReadHeaderTimeout: monitoringReadTimeout * time.Second,
	}

	return serve(ctx, log, srv, "monitoring")
}
