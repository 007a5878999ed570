// Package metrics defines Prometheus collectors for the account service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Signups counts signup attempts by result (created, duplicate, invalid, error).
	Signups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_signups_total",
		Help: "Signup attempts by result.",
	}, []string{"result"})

	// Logins counts login attempts by result (success, invalid_credentials, inactive, error).
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	// TokenValidations counts bearer token checks by result (valid, invalid).
	TokenValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "account_token_validations_total",
		Help: "Bearer token validations by result.",
	}, []string{"result"})
)
