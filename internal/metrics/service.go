package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the collectors.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GamesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_games_recorded_total",
			Help: "Games successfully recorded.",
		}),
		RejectedWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_rejected_writes_total",
			Help: "Writes refused by a league rule before reaching the store.",
		}, []string{"reason"}),
		AuthOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_auth_outcomes_total",
			Help: "Admin decisions taken after an identity authenticated.",
		}, []string{"outcome"}),
		StandingsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_standings_cache_total",
			Help: "Standings cache lookups.",
		}, []string{"result"}),
		StandingsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_standings_compute_duration_seconds",
			Help:    "Time spent loading and computing the standings table.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_notifications_total",
			Help: "Game result notifications by delivery status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		s.GamesRecorded,
		s.RejectedWrites,
		s.AuthOutcomes,
		s.StandingsCache,
		s.StandingsDuration,
		s.NotificationsTotal,
	)

	return s
}

func (s *Service) IncGamesRecorded() {
	s.GamesRecorded.Inc()
}

func (s *Service) IncRejectedWrites(reason string) {
	s.RejectedWrites.WithLabelValues(reason).Inc()
}

func (s *Service) IncAuthOutcome(outcome string) {
	s.AuthOutcomes.WithLabelValues(outcome).Inc()
}

func (s *Service) IncStandingsCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	s.StandingsCache.WithLabelValues(result).Inc()
}

func (s *Service) ObserveStandingsDuration(seconds float64) {
	s.StandingsDuration.Observe(seconds)
}

func (s *Service) IncNotifications(ok bool) {
	status := "failed"
	if ok {
		status = "sent"
	}
	s.NotificationsTotal.WithLabelValues(status).Inc()
}
