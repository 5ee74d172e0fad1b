package orchestrator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/request"
)

// maxRecent bounds the recent-results map so long-running processes do
// not grow without limit.
const maxRecent = 100

type recentResult struct {
	Kind   request.Kind
	Result any
}

// state holds the mutable bookkeeping of the orchestrator: the in-flight
// gauge, the bounded recent-results map, and per-kind failure counters.
type state struct {
	inflight int64

	mu       sync.Mutex
	recent   map[string]recentResult
	order    []string
	failures map[request.Kind]int64
}

func newState() *state {
	return &state{
		recent:   make(map[string]recentResult),
		failures: make(map[request.Kind]int64),
	}
}

func (s *state) begin() func() {
	atomic.AddInt64(&s.inflight, 1)
	return func() { atomic.AddInt64(&s.inflight, -1) }
}

func (s *state) remember(id string, kind request.Kind, result any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recent[id]; !ok {
		s.order = append(s.order, id)
	}
	s.recent[id] = recentResult{Kind: kind, Result: result}
	for len(s.order) > maxRecent {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.recent, oldest)
	}
}

func (s *state) fail(kind request.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[kind]++
}

// Result returns a remembered envelope by request id.
func (s *Service) Result(id string) (any, bool) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	entry, ok := s.state.recent[id]
	if !ok {
		return nil, false
	}
	return entry.Result, true
}

// SystemStatus is the operational snapshot served by the status endpoint.
type SystemStatus struct {
	Timestamp         time.Time              `json:"timestamp"`
	Agents            map[string]string      `json:"agents"`
	QueueSize         int                    `json:"queue_size"`
	CacheSize         int                    `json:"cache_size"`
	BundleCacheSize   int                    `json:"bundle_cache_size"`
	FailuresByRequest map[request.Kind]int64 `json:"failures_by_request,omitempty"`
	Status            string                 `json:"status"`
}

// Status reports the orchestrator view of the system: every stage engine
// is in-process, so a running instance means every agent is active.
func (s *Service) Status() SystemStatus {
	s.state.mu.Lock()
	cacheSize := len(s.state.recent)
	failures := make(map[request.Kind]int64, len(s.state.failures))
	for k, v := range s.state.failures {
		failures[k] = v
	}
	s.state.mu.Unlock()

	bundleEntries := 0
	if s.Aggregator != nil && s.Aggregator.Cache != nil {
		bundleEntries = s.Aggregator.Cache.Len()
	}

	return SystemStatus{
		Timestamp: s.Clock.Now(),
		Agents: map[string]string{
			"data_collection":        "active",
			"risk_assessment":        "active",
			"portfolio_optimization": "active",
			"financial_inclusion":    "active",
		},
		QueueSize:         int(atomic.LoadInt64(&s.state.inflight)),
		CacheSize:         cacheSize,
		BundleCacheSize:   bundleEntries,
		FailuresByRequest: failures,
		Status:            "operational",
	}
}
