package metrics

// Metrics is what the services report. Prometheus is the only real implementation.
type Metrics interface {
	IncGamesRecorded()
	IncRejectedWrites(reason string)
	IncAuthOutcome(outcome string)
	IncStandingsCache(hit bool)
	ObserveStandingsDuration(seconds float64)
	IncNotifications(ok bool)
}
