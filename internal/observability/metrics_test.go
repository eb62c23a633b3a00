package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshotAveragesRemoteCalls(t *testing.T) {
	m := NewMetrics()
	m.RecordRemoteCall("list complaints", 200, 10*time.Millisecond)
	m.RecordRemoteCall("list complaints", 200, 30*time.Millisecond)
	m.RecordRemoteCall("update status", 0, time.Millisecond)
	m.RecordRequest("/complaints", "GET", 200, time.Millisecond)
	m.RecordError("/complaints/:id/status", "POST", "TRANSPORT_FAILURE")

	snap := m.Snapshot()

	assert.Equal(t, int64(2), snap.RemoteCalls["list complaints|200"])
	assert.Equal(t, int64(20), snap.RemoteAvgMilli["list complaints|200"])
	assert.Equal(t, int64(1), snap.Requests["/complaints|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/complaints/:id/status|POST|TRANSPORT_FAILURE"])
	assert.Equal(t, []string{"list complaints|200", "update status|0"}, snap.RemoteOperations())
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRemoteCall("x", 200, time.Millisecond)
	m.RecordRequest("/", "GET", 200, time.Millisecond)

	assert.Empty(t, m.Snapshot().RemoteCalls)
}
