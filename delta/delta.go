// Package delta turns cumulative counters, such as a rain gauge total, into
// the amount accumulated since the previous reading.
package delta

import (
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/parse"
)

// Spec maps a delta field name to the cumulative field it is derived from.
type Spec map[string]string

// DefaultSpec is used when no deltas are configured.
func DefaultSpec() Spec {
	return Spec{
		"rain":    "rain_total",
		"strikes": "strikes_total",
	}
}

type pair struct {
	output, source string
}

// Calculator holds the last value seen for each cumulative field. Nothing is
// persisted, counters start over with the process.
type Calculator struct {
	pairs []pair

	mu       sync.Mutex
	last     map[string]float64
	settling map[string]bool

	// Decrement, if set, is called for each reading lower than the last.
	Decrement func(source string, value, last float64)
}

func NewCalculator(spec Spec) *Calculator {
	c := &Calculator{
		last:     make(map[string]float64),
		settling: make(map[string]bool),
	}

	for output, source := range spec {
		c.pairs = append(c.pairs, pair{output, source})
	}
	sort.Slice(c.pairs, func(i, j int) bool {
		return c.pairs[i].output < c.pairs[j].output
	})

	return c
}

// Apply adds delta fields to pkt for every configured source present in it.
// No delta is produced for the first reading of a source, for a reading
// lower than the previous one, or for the reading that follows such a
// decrement. The last value is always updated.
func (c *Calculator) Apply(pkt *parse.Packet) {
	if pkt == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]float64)
	for _, p := range c.pairs {
		value, ok := pkt.Fields[p.source]
		if !ok {
			continue
		}

		// Several outputs may share a source, compute it once.
		if d, done := seen[p.source]; done {
			if d >= 0 {
				pkt.Set(p.output, d)
			}
			continue
		}

		d := c.delta(p.source, value)
		seen[p.source] = d
		if d >= 0 {
			pkt.Set(p.output, d)
		}
	}
}

// delta returns -1 when no delta should be produced.
func (c *Calculator) delta(source string, value float64) float64 {
	last, ok := c.last[source]
	c.last[source] = value

	switch {
	case !ok:
		return -1
	case value < last:
		log.Infof("%s decrement ignored: new: %s old: %s", source, parse.FormatValue(value), parse.FormatValue(last))
		if c.Decrement != nil {
			c.Decrement(source, value, last)
		}
		c.settling[source] = true
		return -1
	case c.settling[source]:
		delete(c.settling, source)
		return -1
	}

	return value - last
}

// Last returns the last value seen for source.
func (c *Calculator) Last(source string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.last[source]
	return v, ok
}
