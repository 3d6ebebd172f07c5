// Package server holds the runtime state for serve mode: shared API
// clients, health endpoints for liveness/readiness probes, and a dedicated
// Prometheus metrics server.
package server
