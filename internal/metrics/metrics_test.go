package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRun("wc", 120*time.Millisecond, 12, nil)
	m.ObserveRun("wc", time.Second, 0, errors.New("bonus table has no declared reward"))
	m.RankingWrite("wc", "current", nil)
	m.RankingWrite("wc", "current", nil)
	m.RankingWrite("wc", "baseline", errors.New("locked"))
	m.Page("wc", "predictions")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("wc", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("wc", "error")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.participants.WithLabelValues("wc")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rankingWrites.WithLabelValues("wc", "current", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rankingWrites.WithLabelValues("wc", "baseline", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pages.WithLabelValues("wc", "predictions")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.runDuration))

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRun("wc", time.Second, 3, nil)
	m.RankingWrite("wc", "current", nil)
	m.Page("wc", "questions")
}
