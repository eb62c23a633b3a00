package observability

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for gateway and remote traffic.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	remoteCount  map[string]int64
	remoteTime   map[string]time.Duration
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Requests       map[string]int64 `json:"requests"`
	Errors         map[string]int64 `json:"errors"`
	RemoteCalls    map[string]int64 `json:"remoteCalls"`
	RemoteAvgMilli map[string]int64 `json:"remoteAvgMillis"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		remoteCount:  make(map[string]int64),
		remoteTime:   make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for gateway requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
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

// RecordRemoteCall counts a call to the Remote Complaint Service. status is 0
// when the request never got an answer.
func (m *Metrics) RecordRemoteCall(operation string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := operation + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remoteCount[key]++
	m.remoteTime[key] += duration
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Requests:       map[string]int64{},
		Errors:         map[string]int64{},
		RemoteCalls:    map[string]int64{},
		RemoteAvgMilli: map[string]int64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for k, v := range m.remoteCount {
		snap.RemoteCalls[k] = v
		snap.RemoteAvgMilli[k] = (m.remoteTime[k] / time.Duration(v)).Milliseconds()
	}
	return snap
}

// RemoteOperations returns the sorted operation keys seen so far.
func (s MetricsSnapshot) RemoteOperations() []string {
	keys := make([]string, 0, len(s.RemoteCalls))
	for k := range s.RemoteCalls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
