package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestQueryOperation(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{`SELECT * FROM "posts"`, "select"},
		{"  update posts SET views = views + 1", "update"},
		{"INSERT INTO boards", "insert"},
		{"DELETE FROM posts", "delete"},
		{"PRAGMA foreign_keys", "other"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, queryOperation(tt.sql), tt.sql)
	}
}

func TestRecordAuthEvent(t *testing.T) {
	c := AuthEvents.WithLabelValues("login", "failure")
	before := counterValue(t, c)

	RecordAuthEvent("login", "failure")

	assert.Equal(t, before+1, counterValue(t, c))
}

func TestObserveQuery(t *testing.T) {
	ObserveQuery("SELECT 1", 3*time.Millisecond)

	var m dto.Metric
	h, ok := DatabaseQueryLatency.WithLabelValues("select").(prometheus.Histogram)
	require.True(t, ok)
	require.NoError(t, h.Write(&m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(1))
}
