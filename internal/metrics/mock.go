package metrics

import "sync"

// Mock records calls for tests. It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	gamesRecorded  int
	rejectedWrites map[string]int
	authOutcomes   map[string]int
	cacheHits      int
	cacheMisses    int
	durations      []float64
	notifications  map[bool]int
}

func NewMock() *Mock {
	return &Mock{
		rejectedWrites: make(map[string]int),
		authOutcomes:   make(map[string]int),
		notifications:  make(map[bool]int),
	}
}

func (m *Mock) IncGamesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesRecorded++
}

func (m *Mock) IncRejectedWrites(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectedWrites[reason]++
}

func (m *Mock) IncAuthOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authOutcomes[outcome]++
}

func (m *Mock) IncStandingsCache(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.cacheHits++
	} else {
		m.cacheMisses++
	}
}

func (m *Mock) ObserveStandingsDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, seconds)
}

func (m *Mock) IncNotifications(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[ok]++
}

func (m *Mock) GamesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesRecorded
}

func (m *Mock) RejectedWrites(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejectedWrites[reason]
}

func (m *Mock) AuthOutcomes(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authOutcomes[outcome]
}

// CacheLookups returns hits and misses.
func (m *Mock) CacheLookups() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits, m.cacheMisses
}

func (m *Mock) Notifications(ok bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifications[ok]
}
