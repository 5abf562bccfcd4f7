// Package mapper selects and renames the observations a user asked for.
//
// A sensor map entry names an output field and a pattern over qualified
// field names of the form <observation>.<sensor_id>.<decoder>. The pattern
// is either a literal field name, three dot separated glob patterns matched
// part by part, or a bare observation name.
package mapper

import (
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/bemasher/rtlwx/parse"
)

// SensorMap maps output field names to patterns.
type SensorMap map[string]string

// Validate checks every pattern for the allowed shapes and glob syntax.
func (m SensorMap) Validate() error {
	for _, name := range m.names() {
		pattern := m[name]
		if name == "" {
			return errors.Errorf("sensor_map: empty output name for %q", pattern)
		}
		if pattern == "" {
			return errors.Errorf("sensor_map: empty pattern for %s", name)
		}

		parts := strings.Split(pattern, ".")
		if len(parts) != 1 && len(parts) != 3 {
			return errors.Errorf("sensor_map: %s: pattern %q needs 1 or 3 parts, has %d", name, pattern, len(parts))
		}
		for _, part := range parts {
			if _, err := path.Match(glob(part), "x"); err != nil {
				return errors.Wrapf(err, "sensor_map: %s: pattern %q", name, pattern)
			}
		}
	}
	return nil
}

func (m SensorMap) names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Mapper struct {
	sensorMap SensorMap
	names     []string
}

func New(m SensorMap) *Mapper {
	return &Mapper{sensorMap: m, names: m.names()}
}

// Map returns a packet holding only the mapped fields, or nil if nothing
// matched. The input is not modified.
func (m *Mapper) Map(pkt *parse.Packet) *parse.Packet {
	if pkt == nil || len(m.names) == 0 {
		return nil
	}

	keys := pkt.Keys()
	out := parse.NewPacket(pkt.DateTime, pkt.Units)

	for _, name := range m.names {
		if key, ok := Match(m.sensorMap[name], keys); ok {
			out.Set(name, pkt.Fields[key])
		}
	}

	if out.Len() == 0 {
		return nil
	}
	return out
}

// Match returns the first key, in the order given, selected by pattern.
func Match(pattern string, keys []string) (string, bool) {
	for _, k := range keys {
		if k == pattern {
			return k, true
		}
	}

	pparts := strings.Split(pattern, ".")
	switch len(pparts) {
	case 1:
		for _, k := range keys {
			if obs, _, _, ok := parse.SplitKey(k); ok && obs == pattern {
				return k, true
			}
		}
	case 3:
		for _, k := range keys {
			kparts := strings.Split(k, ".")
			if len(kparts) != 3 {
				continue
			}
			if partMatch(pparts[0], kparts[0]) &&
				partMatch(pparts[1], kparts[1]) &&
				partMatch(pparts[2], kparts[2]) {
				return k, true
			}
		}
	}

	return "", false
}

func partMatch(pattern, value string) bool {
	ok, err := path.Match(glob(pattern), value)
	return err == nil && ok
}

// glob rewrites shell style negated classes, [!abc], to the [^abc] form
// path.Match understands.
func glob(pattern string) string {
	return strings.Replace(pattern, "[!", "[^", -1)
}
