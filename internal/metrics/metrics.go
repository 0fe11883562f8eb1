package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "skipsel"

// Fetch outcomes recorded by ObserveFetch.
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeNetwork   = "network_error"
)

// Recorder holds the catalog counters. A nil *Recorder is valid and records nothing.
type Recorder struct {
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	skipsFiltered prometheus.Counter
}

// New registers the collectors on reg. Passing a fresh prometheus.NewRegistry()
// keeps tests isolated.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Listings served from the location cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Listings that required a remote fetch",
		}),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Remote listing fetches by outcome",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of remote listing fetches",
			Buckets:   prometheus.DefBuckets,
		}),
		skipsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skips_filtered_total",
			Help:      "Skips dropped for being outside the supported size range",
		}),
	}

	if reg != nil {
		reg.MustRegister(r.cacheHits, r.cacheMisses, r.fetchTotal, r.fetchDuration, r.skipsFiltered)
	}
	return r
}

func (r *Recorder) IncCacheHit() {
	if r == nil {
		return
	}
	r.cacheHits.Inc()
}

func (r *Recorder) IncCacheMiss() {
	if r == nil {
		return
	}
	r.cacheMisses.Inc()
}

func (r *Recorder) ObserveFetch(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetchTotal.WithLabelValues(outcome).Inc()
	r.fetchDuration.Observe(d.Seconds())
}

func (r *Recorder) AddFiltered(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.skipsFiltered.Add(float64(n))
}

// WriteTextfile dumps everything gathered by g in the node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
