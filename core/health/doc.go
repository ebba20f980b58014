// Package health provides liveness and readiness handlers for probes.
//
//	mux.Handle("GET /health/live", health.Liveness())
//	mux.Handle("GET /health/ready", health.Readiness(log, redis.Healthcheck(client)))
package health
