package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for commands and HTTP requests.
type Metrics struct {
	mu           sync.Mutex
	commandCount map[string]int64
	requestCount map[string]int64
	errorCount   map[string]int64
	requestTime  time.Duration
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Commands map[string]int64 `json:"commands"`
	Requests map[string]int64 `json:"requests"`
	Errors   map[string]int64 `json:"errors"`

	// RequestTimeMS is the summed handler time across all requests.
	RequestTimeMS int64 `json:"request_time_ms"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		commandCount: make(map[string]int64),
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordCommand counts one dispatched command by verb and outcome code
// ("ok" on success).
func (m *Metrics) RecordCommand(verb, outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandCount[verb+"|"+outcome]++
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestTime += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Commands: copyCounts(m.commandCount),
		Requests: copyCounts(m.requestCount),
		Errors:   copyCounts(m.errorCount),

		RequestTimeMS: m.requestTime.Milliseconds(),
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
