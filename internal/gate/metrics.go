// ABOUTME: Prometheus metrics for gate decisions
// ABOUTME: One counter vector labeled by decision outcome

package gate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moontv_auth_decisions_total",
	Help: "Authentication gate decisions by outcome.",
}, []string{"decision"})
