package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fpgacores/testvec/vector"
)

const namespace = "testvec"

// Fixture outcomes recorded under the "result" label.
const (
	ResultGenerated = "generated"
	ResultSkipped   = "skipped"
	ResultFailed    = "failed"
)

// Metrics counts what a generation run produced. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	fixtures *prometheus.CounterVec
	bytes    prometheus.Counter
	words    prometheus.Counter
	cycles   prometheus.Counter
	variants prometheus.Counter
	duration prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		fixtures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixtures_total",
			Help:      "Fixtures handled, by result.",
		}, []string{"result"}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_bytes_total",
			Help:      "Packed input bytes written.",
		}),
		words: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_words_total",
			Help:      "Reference words written.",
		}),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Serialized cycles including idle ones.",
		}),
		variants: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "variants_total",
			Help:      "Corrupted reference variants written.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fixture_duration_seconds",
			Help:      "Time to generate and write one fixture.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	for _, c := range []prometheus.Collector{m.fixtures, m.bytes, m.words, m.cycles, m.variants, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) Generated(v *vector.Vectors, took time.Duration) {
	if m == nil {
		return
	}
	m.fixtures.WithLabelValues(ResultGenerated).Inc()
	m.bytes.Add(float64(len(v.Packed)))
	m.words.Add(float64(len(v.Words)))
	m.cycles.Add(float64(len(v.Bits)))
	m.duration.Observe(took.Seconds())
}

func (m *Metrics) Variant() {
	if m != nil {
		m.variants.Inc()
	}
}

func (m *Metrics) Skipped() {
	if m != nil {
		m.fixtures.WithLabelValues(ResultSkipped).Inc()
	}
}

func (m *Metrics) Failed() {
	if m != nil {
		m.fixtures.WithLabelValues(ResultFailed).Inc()
	}
}

// WriteTextfile dumps g in the node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, g)
}
