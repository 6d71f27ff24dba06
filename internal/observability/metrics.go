// Package observability provides Prometheus metrics for the auth
// service.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// LoginsTotal counts login attempts by result
	// (issued, invalid_credentials, error).
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simpleauth_logins_total",
			Help: "Login attempts",
		},
		[]string{"result"},
	)

	// RegistrationsTotal counts registration attempts by result
	// (created, conflict, error).
	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simpleauth_registrations_total",
			Help: "Registration attempts",
		},
		[]string{"result"},
	)

	// SessionsIssuedTotal counts sessions created by successful logins.
	SessionsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "simpleauth_sessions_issued_total",
			Help: "Sessions issued",
		},
	)

	// GateRejectionsTotal counts requests rejected by the session gate,
	// by response mode (json, redirect).
	GateRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simpleauth_gate_rejections_total",
			Help: "Session gate rejections",
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(
		LoginsTotal,
		RegistrationsTotal,
		SessionsIssuedTotal,
		GateRejectionsTotal,
	)
}
