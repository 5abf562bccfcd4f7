package parse

import "strings"

// An Extractor finds one observation in a JSON object and returns it in the
// unit system u. Alternate key spellings and units used by different
// versions of rtl_433 are tried in order.
type Extractor func(obj Object, u Units) (float64, bool)

type unit int

const (
	kph unit = iota
	mph
	ms
	mm
	cm
	in
	hpa
	inhg
	km
	mi
)

type unitKey struct {
	key  string
	unit unit
}

func first(obj Object, keys []unitKey) (float64, unit, bool) {
	for _, k := range keys {
		if v, ok := obj.Float(k.key); ok {
			return v, k.unit, true
		}
	}
	return 0, 0, false
}

func speed(v float64, from unit, u Units) float64 {
	to := kph
	switch u {
	case US:
		to = mph
	case MetricWX:
		to = ms
	}
	if from == to {
		return v
	}
	switch from {
	case mph:
		v = MphToKph(v)
	case ms:
		v = MsToKph(v)
	}
	return u.Speed(v)
}

func rain(v float64, from unit, u Units) float64 {
	to := mm
	switch u {
	case US:
		to = in
	case Metric:
		to = cm
	}
	if from == to {
		return v
	}
	switch from {
	case in:
		v = InToMm(v)
	case cm:
		v *= 10
	}
	return u.Rain(v)
}

var (
	windSpeedKeys = []unitKey{
		{"wind_avg_km_h", kph},
		{"wind_speed_kph", kph},
		{"wind_speed_km_h", kph},
		{"wind_avg_mi_h", mph},
		{"wind_speed_mph", mph},
		{"wind_avg_m_s", ms},
		{"wind_speed_ms", ms},
		{"wind_speed_m_s", ms},
		{"windstrength", ms},
		{"speed", kph},
	}
	windGustKeys = []unitKey{
		{"wind_max_km_h", kph},
		{"gust_speed_kph", kph},
		{"wind_max_mi_h", mph},
		{"gust_speed_mph", mph},
		{"wind_max_m_s", ms},
		{"gust_speed_ms", ms},
		{"gust_speed_m_s", ms},
		{"windgust", ms},
		{"gust", kph},
	}
	rainKeys = []unitKey{
		{"rain_mm", mm},
		{"rainfall_mm", mm},
		{"rain_in", in},
		{"rain_inch", in},
		{"rain_cm", cm},
		{"rain", mm},
	}
	rainRateKeys = []unitKey{
		{"rain_rate_mm_h", mm},
		{"rain_rate_in_h", in},
		{"rain_rate", mm},
	}
	pressureKeys = []unitKey{
		{"pressure_hPa", hpa},
		{"pressure_inHg", inhg},
	}
	distanceKeys = []unitKey{
		{"storm_dist_km", km},
		{"storm_dist_mi", mi},
		{"storm_dist", km},
		{"strike_distance", mi},
	}
)

// Key returns the raw value of a numeric field.
func Key(key string) Extractor {
	return func(obj Object, _ Units) (float64, bool) {
		return obj.Float(key)
	}
}

// FirstKey returns the raw value of the first numeric field present.
func FirstKey(keys ...string) Extractor {
	return func(obj Object, _ Units) (float64, bool) {
		for _, k := range keys {
			if v, ok := obj.Float(k); ok {
				return v, true
			}
		}
		return 0, false
	}
}

// TemperatureOf reads a temperature given in degC under cKey or degF under fKey.
func TemperatureOf(cKey, fKey string) Extractor {
	return func(obj Object, u Units) (float64, bool) {
		if c, ok := obj.Float(cKey); ok {
			return u.Temperature(c), true
		}
		if f, ok := obj.Float(fKey); ok {
			if u == US {
				return f, true
			}
			return FtoC(f), true
		}
		return 0, false
	}
}

var temperature = TemperatureOf("temperature_C", "temperature_F")

func Temperature(obj Object, u Units) (float64, bool) {
	if v, ok := temperature(obj, u); ok {
		return v, true
	}
	// Legacy field, degC.
	if c, ok := obj.Float("temperature"); ok {
		return u.Temperature(c), true
	}
	return 0, false
}

func Humidity(obj Object, _ Units) (float64, bool) {
	return obj.Float("humidity")
}

func WindSpeed(obj Object, u Units) (float64, bool) {
	v, from, ok := first(obj, windSpeedKeys)
	if !ok {
		return 0, false
	}
	return speed(v, from, u), true
}

func WindGust(obj Object, u Units) (float64, bool) {
	v, from, ok := first(obj, windGustKeys)
	if !ok {
		return 0, false
	}
	return speed(v, from, u), true
}

func WindDir(obj Object, _ Units) (float64, bool) {
	for _, key := range []string{"wind_dir_deg", "wind_direction", "winddirection", "direction_deg", "direction"} {
		if v, ok := obj.Float(key); ok {
			return v, true
		}
	}
	return 0, false
}

// Rain reads a cumulative rain total.
func Rain(obj Object, u Units) (float64, bool) {
	v, from, ok := first(obj, rainKeys)
	if !ok {
		return 0, false
	}
	return rain(v, from, u), true
}

// RainRate reads a rain rate, per hour.
func RainRate(obj Object, u Units) (float64, bool) {
	v, from, ok := first(obj, rainRateKeys)
	if !ok {
		return 0, false
	}
	return rain(v, from, u), true
}

func Pressure(obj Object, u Units) (float64, bool) {
	v, from, ok := first(obj, pressureKeys)
	if !ok {
		return 0, false
	}
	if from == inhg {
		if u == US {
			return v, true
		}
		return InHgToHpa(v), true
	}
	return u.Pressure(v), true
}

func Distance(obj Object, u Units) (float64, bool) {
	v, from, ok := first(obj, distanceKeys)
	if !ok {
		return 0, false
	}
	if from == mi {
		if u == US {
			return v, true
		}
		return MiToKm(v), true
	}
	return u.Distance(v), true
}

// UV reads the raw UV sensor value.
func UV(obj Object, _ Units) (float64, bool) {
	return obj.Float("uv")
}

func UVIndex(obj Object, _ Units) (float64, bool) {
	if v, ok := obj.Float("uvi"); ok {
		return v, true
	}
	return obj.Float("uv_index")
}

// Illuminance reads light intensity in lux.
func Illuminance(obj Object, _ Units) (float64, bool) {
	if v, ok := obj.Float("light_lux"); ok {
		return v, true
	}
	if v, ok := obj.Float("lux"); ok {
		return v, true
	}
	if v, ok := obj.Float("light_klx"); ok {
		return v * 1000, true
	}
	return 0, false
}

// Battery normalizes battery state to 0 (OK) or 1 (LOW). battery_ok is 1 for
// a healthy battery, or a fractional level; below one half counts as LOW.
func Battery(obj Object, _ Units) (float64, bool) {
	if v, ok := obj.Float("battery_ok"); ok {
		if v < 0.5 {
			return 1, true
		}
		return 0, true
	}
	if s, ok := obj.String("battery"); ok {
		v, err := BatteryStatus(s)
		return v, err == nil
	}
	return 0, false
}

// BatteryLevel reads a fractional battery level, 1 when full.
func BatteryLevel(obj Object, _ Units) (float64, bool) {
	return obj.Float("battery_ok")
}

func isLow(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "LOW")
}
