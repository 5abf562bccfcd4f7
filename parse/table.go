package parse

import "strings"

// A Field pairs an observation name with the extractor that reads it.
type Field struct {
	Name    string
	Extract Extractor
}

// Observations most decoders share.
var (
	FieldTemperature  = Field{"temperature", Temperature}
	FieldHumidity     = Field{"humidity", Humidity}
	FieldBattery      = Field{"battery", Battery}
	FieldBatteryLevel = Field{"battery_level", BatteryLevel}
	FieldWindSpeed    = Field{"wind_speed", WindSpeed}
	FieldWindGust     = Field{"wind_gust", WindGust}
	FieldWindDir      = Field{"wind_dir", WindDir}
	FieldRainTotal    = Field{"rain_total", Rain}
	FieldRainRate     = Field{"rain_rate", RainRate}
	FieldPressure     = Field{"pressure", Pressure}
	FieldUV           = Field{"uv", UV}
	FieldUVIndex      = Field{"uv_index", UVIndex}
	FieldIlluminance  = Field{"illuminance", Illuminance}
	FieldStrikes      = Field{"strikes_total", Key("strike_count")}
	FieldDistance     = Field{"distance", Distance}
	FieldMoisture     = Field{"moisture", Key("moisture")}
)

// A SensorIDFunc derives a stable sensor identifier from a JSON message.
type SensorIDFunc func(Object) string

// ID uses the field as printed.
func ID(key string) SensorIDFunc {
	return func(obj Object) string { return obj.ID(key) }
}

// HexID formats the field as at least four hex digits.
func HexID(key string) SensorIDFunc {
	return func(obj Object) string { return obj.Hex(key) }
}

// JoinIDs joins the fields present with colons, as in channel:id.
func JoinIDs(keys ...string) SensorIDFunc {
	return func(obj Object) string { return obj.JoinID(keys...) }
}

// AnyID uses the first of the fields present.
func AnyID(keys ...string) SensorIDFunc {
	return func(obj Object) string {
		for _, k := range keys {
			if id := obj.ID(k); id != "" {
				return id
			}
		}
		return ""
	}
}

// NewJSON returns a JSONFunc reading fields in units and qualifying them
// with the sensor id and name.
func NewJSON(name string, units Units, id SensorIDFunc, fields ...Field) JSONFunc {
	return func(obj Object) *Packet {
		p := FromObject(obj, units)
		for _, f := range fields {
			p.Extract(obj, f.Name, f.Extract)
		}
		return p.Qualify(id(obj), name)
	}
}

// NewText returns a TextFunc for messages made of "Label: value" lines. The
// sensor id is built from the identifier labels in ids, joined with colons.
func NewText(name string, units Units, labels Labels, ids ...string) TextFunc {
	return func(ts int64, payload string, lines []string) *Packet {
		obs, found := labels.Parse(lines)

		parts := make([]string, 0, len(ids))
		for _, k := range ids {
			if v, ok := found[k]; ok {
				parts = append(parts, v)
			} else {
				parts = append(parts, "0")
			}
		}

		p := NewPacket(ts, units)
		p.Merge(obs)
		return p.Qualify(strings.Join(parts, ":"), name)
	}
}
