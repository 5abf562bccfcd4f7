// Package driver pulls messages through the pipeline: segmented line groups
// are decoded into canonical packets, narrowed to the configured sensor map,
// stripped of consecutive duplicates and extended with counter deltas.
package driver

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/delta"
	"github.com/bemasher/rtlwx/mapper"
	"github.com/bemasher/rtlwx/metric"
	"github.com/bemasher/rtlwx/parse"
)

// ErrNotRunning is returned once the line source has ended.
var ErrNotRunning = errors.New("rtl_433 process is not running")

// A Source yields groups of lines, one message each, and io.EOF at the end
// of the stream.
type Source interface {
	Next(ctx context.Context) ([]string, error)
}

type Config struct {
	SensorMap mapper.SensorMap
	Deltas    delta.Spec

	LogUnknown  bool
	LogUnmapped bool
}

// Digest identifies a mapped packet by value, dateTime included.
type Digest uint64

func NewDigest(pkt *parse.Packet) Digest {
	return Digest(xxhash.Sum64String(pkt.String()))
}

type Driver struct {
	source  Source
	factory *parse.Factory
	mapper  *mapper.Mapper
	deltas  *delta.Calculator
	metrics *metric.Metrics

	logUnknown  bool
	logUnmapped bool

	// Stderr, if set, returns the process's pending stderr lines.
	Stderr func() []string

	mu       sync.Mutex
	last     Digest
	haveLast bool
	latest   *parse.Packet
	detected map[string]int
}

// New builds a driver. m may be nil.
func New(source Source, factory *parse.Factory, cfg Config, m *metric.Metrics) *Driver {
	d := &Driver{
		source:      source,
		factory:     factory,
		mapper:      mapper.New(cfg.SensorMap),
		deltas:      delta.NewCalculator(cfg.Deltas),
		metrics:     m,
		logUnknown:  cfg.LogUnknown,
		logUnmapped: cfg.LogUnmapped,
		detected:    make(map[string]int),
	}
	d.deltas.Decrement = func(source string, value, last float64) {
		m.ObserveDecrement(source)
	}

	log.Infof("sensor map is %v", cfg.SensorMap)
	log.Infof("deltas is %v", cfg.Deltas)

	return d
}

// Next blocks until the next mapped packet is available. When the source
// ends, the remaining stderr output is logged and ErrNotRunning returned.
func (d *Driver) Next(ctx context.Context) (*parse.Packet, error) {
	for {
		lines, err := d.NextGroup(ctx)
		if err != nil {
			return nil, err
		}

		pkt := d.Process(lines)
		d.drainStderr(false)

		if pkt != nil {
			return pkt, nil
		}
	}
}

// NextGroup returns the next raw line group, which may be empty.
func (d *Driver) NextGroup(ctx context.Context) ([]string, error) {
	lines, err := d.source.Next(ctx)
	if err == io.EOF {
		d.drainStderr(true)
		return nil, ErrNotRunning
	}
	if err != nil {
		return nil, err
	}

	d.metrics.ObserveGroup()
	return lines, nil
}

// Decode turns a group into a canonical packet and records the sensor as
// detected. It returns nil for empty, unrecognized and malformed groups.
func (d *Driver) Decode(lines []string) *parse.Packet {
	pkt, err := d.factory.Create(lines)
	if err != nil {
		switch errors.Cause(err) {
		case parse.ErrUnrecognized:
			d.metrics.ObserveUnrecognized()
			if d.logUnknown {
				log.Infof("unparsed: %q", lines)
			}
		default:
			d.metrics.ObserveMalformed()
			log.Debugf("malformed: %s", err)
		}
		return nil
	}
	if pkt == nil {
		return nil
	}

	d.metrics.ObserveParsed(pkt.Decoder)

	d.mu.Lock()
	d.detected[pkt.Label()]++
	d.mu.Unlock()

	return pkt
}

// Process runs one group through the whole pipeline and returns the packet
// to emit, if any.
func (d *Driver) Process(lines []string) *parse.Packet {
	pkt := d.Decode(lines)
	if pkt == nil {
		return nil
	}

	mapped := d.mapper.Map(pkt)
	if mapped == nil {
		d.metrics.ObserveUnmapped()
		if d.logUnmapped {
			log.Infof("unmapped: %q (%s)", lines, pkt)
		}
		return nil
	}

	digest := NewDigest(mapped)

	d.mu.Lock()
	duplicate := d.haveLast && digest == d.last
	d.last, d.haveLast = digest, true
	d.mu.Unlock()

	if duplicate {
		d.metrics.ObserveDuplicate()
		log.Debugf("ignoring duplicate packet %s", mapped)
		return nil
	}

	d.deltas.Apply(mapped)
	log.Debugf("packet=%s", mapped)

	d.mu.Lock()
	d.latest = mapped.Clone()
	d.mu.Unlock()

	d.metrics.ObserveEmitted(mapped.DateTime)
	return mapped
}

func (d *Driver) drainStderr(stopped bool) {
	if d.Stderr == nil {
		return
	}

	lines := d.Stderr()
	if stopped {
		log.Errorf("err: %q", lines)
		return
	}
	for _, line := range lines {
		log.Debugf("stderr: %s", line)
	}
}

// Latest returns a copy of the last emitted packet, nil before the first.
func (d *Driver) Latest() *parse.Packet {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.latest == nil {
		return nil
	}
	return d.latest.Clone()
}

// Detection is a sensor seen on the air and how many packets it sent.
type Detection struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Detected lists every sensor decoded so far, ordered by label.
func (d *Driver) Detected() []Detection {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Detection, 0, len(d.detected))
	for label, n := range d.detected {
		out = append(out, Detection{label, n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })

	return out
}
