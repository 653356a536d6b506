// Package prometheus exports search metrics to Prometheus.
package prometheus

import (
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsearch"

// Ensure MetricsSearcher implements docsearch.Searcher.
var _ docsearch.Searcher = (*MetricsSearcher)(nil)

// MetricsSearcher wraps a Searcher and records query and build metrics.
type MetricsSearcher struct {
	next docsearch.Searcher

	searches      *prometheus.CounterVec
	zeroResults   *prometheus.CounterVec
	duration      prometheus.Histogram
	builds        prometheus.Counter
	buildDuration prometheus.Histogram
	entries       *prometheus.GaugeVec
	skipped       prometheus.Gauge
}

// NewMetricsSearcher creates a MetricsSearcher and registers its collectors
// with reg. It panics if a collector is already registered.
func NewMetricsSearcher(next docsearch.Searcher, reg prometheus.Registerer) *MetricsSearcher {
	s := &MetricsSearcher{
		next: next,
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of searches by kind",
		}, []string{"kind"}),
		zeroResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zero_result_searches_total",
			Help:      "Searches that matched nothing, by kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search latency in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_builds_total",
			Help:      "Total number of index builds",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_build_duration_seconds",
			Help:      "Index build duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_entries",
			Help:      "Entries in the current index by kind",
		}, []string{"kind"}),
		skipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_skipped_records",
			Help:      "Records skipped by the last build for having no searchable text",
		}),
	}
	reg.MustRegister(s.searches, s.zeroResults, s.duration, s.builds, s.buildDuration, s.entries, s.skipped)
	return s
}

// BuildIndex delegates to the wrapped searcher and updates the index gauges.
func (s *MetricsSearcher) BuildIndex(docs []*docsearch.DocRecord, commands []*docsearch.CommandRecord, agents []*docsearch.AgentRecord) *docsearch.IndexStats {
	start := time.Now()
	stats := s.next.BuildIndex(docs, commands, agents)
	s.buildDuration.Observe(time.Since(start).Seconds())
	s.builds.Inc()

	if stats != nil {
		s.entries.WithLabelValues(string(docsearch.KindDocument)).Set(float64(stats.Documents))
		s.entries.WithLabelValues(string(docsearch.KindCommand)).Set(float64(stats.Commands))
		s.entries.WithLabelValues(string(docsearch.KindAgent)).Set(float64(stats.Agents))
		s.skipped.Set(float64(stats.Skipped))
	}
	return stats
}

// Search delegates to the wrapped searcher and records latency and counts.
func (s *MetricsSearcher) Search(q docsearch.Query) *docsearch.SearchResponse {
	start := time.Now()
	resp := s.next.Search(q)
	s.duration.Observe(time.Since(start).Seconds())

	kind := kindLabel(q.Kind)
	s.searches.WithLabelValues(kind).Inc()
	if resp == nil || resp.Total == 0 {
		s.zeroResults.WithLabelValues(kind).Inc()
	}
	return resp
}

// kindLabel bounds label cardinality to the known kinds.
func kindLabel(k docsearch.Kind) string {
	switch k {
	case docsearch.KindDocument, docsearch.KindCommand, docsearch.KindAgent:
		return string(k)
	default:
		return string(docsearch.KindAll)
	}
}
