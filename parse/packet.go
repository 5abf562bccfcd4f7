package parse

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Units identifies the unit system of a packet's observations.
type Units int

const (
	US       Units = 0x01 // degF, mph, in, inHg
	Metric   Units = 0x10 // degC, km/h, cm, mbar
	MetricWX Units = 0x11 // degC, m/s, mm, mbar
)

func (u Units) String() string {
	switch u {
	case US:
		return "US"
	case Metric:
		return "METRIC"
	case MetricWX:
		return "METRICWX"
	default:
		return fmt.Sprintf("Units(0x%02X)", int(u))
	}
}

// Universal keys present on every emitted packet.
const (
	DateTimeKey = "dateTime"
	UnitsKey    = "usUnits"
)

// Packet is a canonical observation record. Field names produced by a
// decoder are qualified as <observation>.<sensor_id>.<decoder_name>; the
// mapper renames them to the user's output names.
type Packet struct {
	DateTime int64
	Units    Units
	Fields   map[string]float64

	// Set by Qualify, not carried through mapping.
	SensorID string
	Decoder  string
}

func NewPacket(ts int64, units Units) *Packet {
	return &Packet{
		DateTime: ts,
		Units:    units,
		Fields:   make(map[string]float64),
	}
}

func (p *Packet) Set(name string, value float64) {
	p.Fields[name] = value
}

// Extract stores the value found by fn under name. Reports whether a value
// was found.
func (p *Packet) Extract(obj Object, name string, fn Extractor) bool {
	v, ok := fn(obj, p.Units)
	if ok {
		p.Fields[name] = v
	}
	return ok
}

// Merge copies the given observations into the packet.
func (p *Packet) Merge(obs map[string]float64) {
	for name, v := range obs {
		p.Fields[name] = v
	}
}

func (p *Packet) Len() int {
	return len(p.Fields)
}

// Keys returns the field names in sorted order.
func (p *Packet) Keys() []string {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Qualify renames every observation to <name>.<sensorID>.<decoder>. A packet
// without observations yields nil.
func (p *Packet) Qualify(sensorID, decoder string) *Packet {
	if p == nil || len(p.Fields) == 0 {
		return nil
	}

	sensorID = strings.Replace(sensorID, ".", "_", -1)

	fields := make(map[string]float64, len(p.Fields))
	for name, v := range p.Fields {
		fields[name+"."+sensorID+"."+decoder] = v
	}

	p.Fields = fields
	p.SensorID = sensorID
	p.Decoder = decoder

	return p
}

// Label identifies the sensor that produced a qualified packet, in the form
// .<sensor_id>.<decoder_name>.
func (p *Packet) Label() string {
	return "." + p.SensorID + "." + p.Decoder
}

func (p *Packet) Clone() *Packet {
	c := *p
	c.Fields = make(map[string]float64, len(p.Fields))
	for k, v := range p.Fields {
		c.Fields[k] = v
	}
	return &c
}

// SplitKey splits a qualified field name into its three parts.
func SplitKey(key string) (observation, sensorID, decoder string, ok bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// Map flattens the packet into a single mapping including the universal keys.
func (p *Packet) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(p.Fields)+2)
	for k, v := range p.Fields {
		m[k] = v
	}
	m[DateTimeKey] = p.DateTime
	m[UnitsKey] = int(p.Units)
	return m
}

func (p *Packet) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

func (p *Packet) String() string {
	fields := make([]string, 0, len(p.Fields)+2)
	fields = append(fields, fmt.Sprintf("%s:%d", DateTimeKey, p.DateTime))
	fields = append(fields, fmt.Sprintf("%s:%d", UnitsKey, int(p.Units)))
	for _, k := range p.Keys() {
		fields = append(fields, k+":"+FormatValue(p.Fields[k]))
	}
	return "{" + strings.Join(fields, " ") + "}"
}

func (p *Packet) Record() (r []string) {
	r = append(r, strconv.FormatInt(p.DateTime, 10))
	r = append(r, strconv.Itoa(int(p.Units)))
	for _, k := range p.Keys() {
		r = append(r, k+"="+FormatValue(p.Fields[k]))
	}
	return
}

// FormatValue prints a value in its shortest exact form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
