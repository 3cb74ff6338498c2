// Package metrics holds the prometheus collectors for scoring runs and
// ranking write-back.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pool"

// Metrics records engine and write-back activity. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	runs          *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	participants  *prometheus.GaugeVec
	rankingWrites *prometheus.CounterVec
	pages         *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_runs_total",
			Help:      "Scoring engine runs by game and outcome.",
		}, []string{"game", "outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_run_duration_seconds",
			Help:      "Wall time of load, score and rank for one game.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"game"}),
		participants: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants",
			Help:      "Participants ranked in the last scoring run.",
		}, []string{"game"}),
		rankingWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_writes_total",
			Help:      "Ranking rows written by kind (current, baseline) and outcome.",
		}, []string{"game", "kind", "outcome"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_pages_total",
			Help:      "Pages fetched from the store by record kind.",
		}, []string{"game", "kind"}),
	}
	reg.MustRegister(m.runs, m.runDuration, m.participants, m.rankingWrites, m.pages)
	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveRun records one scoring run.
func (m *Metrics) ObserveRun(game string, took time.Duration, participants int, err error) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(game, outcome(err)).Inc()
	if err != nil {
		return
	}
	m.runDuration.WithLabelValues(game).Observe(took.Seconds())
	m.participants.WithLabelValues(game).Set(float64(participants))
}

// RankingWrite records one ranking row write.
func (m *Metrics) RankingWrite(game, kind string, err error) {
	if m == nil {
		return
	}
	m.rankingWrites.WithLabelValues(game, kind, outcome(err)).Inc()
}

// Page records one fetched page.
func (m *Metrics) Page(game, kind string) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues(game, kind).Inc()
}
