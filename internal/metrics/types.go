package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds the Prometheus collectors of the league server.
type Service struct {
	GamesRecorded      prometheus.Counter
	RejectedWrites     *prometheus.CounterVec
	AuthOutcomes       *prometheus.CounterVec
	StandingsCache     *prometheus.CounterVec
	StandingsDuration  prometheus.Histogram
	NotificationsTotal *prometheus.CounterVec
}
