// Package sink delivers emitted packets: printed to an output stream,
// published on NATS or archived in PostgreSQL.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/csv"
	"github.com/bemasher/rtlwx/metric"
	"github.com/bemasher/rtlwx/parse"
)

// A Sink receives every packet the driver emits.
type Sink interface {
	Send(ctx context.Context, pkt *parse.Packet) error
	Close() error
}

// JSON, CSV and plain all implement this interface so we can simplify
// output formatting.
type Encoder interface {
	Encode(interface{}) error
}

// Formats lists the output formats understood by NewEncoder.
var Formats = []string{"plain", "json", "csv"}

// PlainEncoder prints a value on its own line using its String method.
type PlainEncoder struct {
	w io.Writer
}

func (pe PlainEncoder) Encode(v interface{}) (err error) {
	_, err = fmt.Fprintln(pe.w, v)
	return
}

// NewEncoder returns the encoder for format writing to w.
func NewEncoder(w io.Writer, format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case "plain", "":
		return PlainEncoder{w}, nil
	case "json":
		return json.NewEncoder(w), nil
	case "csv":
		return csv.NewEncoder(w), nil
	}
	return nil, errors.Errorf("unknown output format %q", format)
}

// Writer is a Sink encoding packets to a stream.
type Writer struct {
	enc Encoder
}

func NewWriter(w io.Writer, format string) (*Writer, error) {
	enc, err := NewEncoder(w, format)
	if err != nil {
		return nil, err
	}
	return &Writer{enc}, nil
}

func (w *Writer) Send(_ context.Context, pkt *parse.Packet) error {
	return w.enc.Encode(pkt)
}

func (w *Writer) Close() error { return nil }

// Multi fans packets out to several named sinks. A failing sink is logged
// and counted but does not keep the others from receiving the packet.
type Multi struct {
	names   []string
	sinks   []Sink
	metrics *metric.Metrics
}

// NewMulti returns an empty fan out. m may be nil.
func NewMulti(m *metric.Metrics) *Multi {
	return &Multi{metrics: m}
}

func (s *Multi) Add(name string, sink Sink) {
	s.names = append(s.names, name)
	s.sinks = append(s.sinks, sink)
}

func (s *Multi) Len() int {
	return len(s.sinks)
}

// Send returns the first error encountered.
func (s *Multi) Send(ctx context.Context, pkt *parse.Packet) (err error) {
	for i, sink := range s.sinks {
		if e := sink.Send(ctx, pkt); e != nil {
			s.metrics.ObserveSinkError(s.names[i])
			log.Warnf("sink %s: %s", s.names[i], e)
			if err == nil {
				err = errors.Wrap(e, s.names[i])
			}
		}
	}
	return err
}

func (s *Multi) Close() (err error) {
	for i, sink := range s.sinks {
		if e := sink.Close(); e != nil && err == nil {
			err = errors.Wrap(e, s.names[i])
		}
	}
	return err
}
