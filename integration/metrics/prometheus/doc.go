// Package prometheus exports security decisions as Prometheus metrics.
//
//	obs, err := prometheus.NewObserver(prom.DefaultRegisterer)
//	if err != nil {
//		return err
//	}
//	logic, err := security.New(cfg, security.WithObserver(obs))
//
// Metrics, under the configured namespace (default "gatekeeper"):
//
//	security_decisions_total{flow,state,client}
//	security_failures_total{flow,client}
//	security_decision_duration_seconds{flow,state}
package prometheus
