package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/revelaction/namefocus/proxy"
)

// Metrics definitions
var (
	SentencesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "namefocus_sentences_total",
		Help: "Total number of sentences resolved.",
	})

	AnchorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "namefocus_anchors_total",
		Help: "Total number of foci anchored on the name lemma.",
	})

	RetractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "namefocus_retracted_total",
		Help: "Total number of name foci replaced by proxies.",
	})

	RetainedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "namefocus_retained_total",
		Help: "Total number of name foci kept for lack of a proxy.",
	})

	ProxiesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "namefocus_proxies_total",
		Help: "Total number of proxy foci created, by dependency label.",
	}, []string{"label"})

	DocDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "namefocus_doc_seconds",
		Help:    "Time spent resolving a document.",
		Buckets: prometheus.DefBuckets,
	})
)

// Observe records the result of resolving one doc.
func Observe(res proxy.Result) {
	SentencesTotal.Add(float64(res.Sentences))
	AnchorsTotal.Add(float64(res.Anchors))
	RetractedTotal.Add(float64(res.Retracted))
	RetainedTotal.Add(float64(res.Retained))
	for label, n := range res.Labels {
		ProxiesTotal.WithLabelValues(label).Add(float64(n))
	}
	DocDuration.Observe(res.Duration.Seconds())
}

// WriteTextfile writes all registered metrics to path in the node exporter
// textfile collector format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
