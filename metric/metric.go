// Package metric counts what happens to messages as they pass through the
// pipeline. A nil *Metrics is valid and records nothing.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rtlwx"

type Metrics struct {
	Groups       prometheus.Counter
	Parsed       prometheus.Counter
	Unrecognized prometheus.Counter
	Malformed    prometheus.Counter
	Unmapped     prometheus.Counter
	Duplicates   prometheus.Counter
	Emitted      prometheus.Counter
	Decrements   *prometheus.CounterVec
	Decoded      *prometheus.CounterVec
	SinkErrors   *prometheus.CounterVec
	LastPacket   prometheus.Gauge
}

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// New creates the pipeline metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Groups:       counter("groups_total", "Line groups produced by the segmenter, including empty ones."),
		Parsed:       counter("packets_parsed_total", "Messages decoded into a canonical packet."),
		Unrecognized: counter("packets_unrecognized_total", "Messages no decoder recognized."),
		Malformed:    counter("packets_malformed_total", "Messages that could not be read or yielded no observations."),
		Unmapped:     counter("packets_unmapped_total", "Packets with no field selected by the sensor map."),
		Duplicates:   counter("packets_duplicate_total", "Mapped packets dropped as repeats of the previous one."),
		Emitted:      counter("packets_emitted_total", "Mapped packets emitted."),
		Decrements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counter_decrements_total",
			Help:      "Cumulative counter readings lower than the previous reading.",
		}, []string{"source"}),
		Decoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decoded_total",
			Help:      "Packets decoded, by decoder.",
		}, []string{"decoder"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Failed writes, by sink.",
		}, []string{"sink"}),
		LastPacket: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_packet_timestamp_seconds",
			Help:      "dateTime of the last emitted packet.",
		}),
	}

	reg.MustRegister(
		m.Groups, m.Parsed, m.Unrecognized, m.Malformed, m.Unmapped,
		m.Duplicates, m.Emitted, m.Decrements, m.Decoded, m.SinkErrors,
		m.LastPacket,
	)

	return m
}

// ObserveGroup counts a line group.
func (m *Metrics) ObserveGroup() {
	if m != nil {
		m.Groups.Inc()
	}
}

// ObserveParsed counts a packet decoded by decoder.
func (m *Metrics) ObserveParsed(decoder string) {
	if m != nil {
		m.Parsed.Inc()
		m.Decoded.WithLabelValues(decoder).Inc()
	}
}

func (m *Metrics) ObserveUnrecognized() {
	if m != nil {
		m.Unrecognized.Inc()
	}
}

func (m *Metrics) ObserveMalformed() {
	if m != nil {
		m.Malformed.Inc()
	}
}

func (m *Metrics) ObserveUnmapped() {
	if m != nil {
		m.Unmapped.Inc()
	}
}

func (m *Metrics) ObserveDuplicate() {
	if m != nil {
		m.Duplicates.Inc()
	}
}

// ObserveEmitted counts an emitted packet stamped ts.
func (m *Metrics) ObserveEmitted(ts int64) {
	if m != nil {
		m.Emitted.Inc()
		m.LastPacket.Set(float64(ts))
	}
}

func (m *Metrics) ObserveDecrement(source string) {
	if m != nil {
		m.Decrements.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) ObserveSinkError(sink string) {
	if m != nil {
		m.SinkErrors.WithLabelValues(sink).Inc()
	}
}
