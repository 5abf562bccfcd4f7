package parse

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Object is a decoded JSON message.
type Object map[string]interface{}

// DecodeObject parses a single JSON object.
func DecodeObject(line string) (Object, error) {
	var obj Object
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	if obj == nil {
		return nil, errors.New("decode json: not an object")
	}
	return obj, nil
}

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// Float returns a numeric value. Strings are accepted when they begin with a
// number ("21.3 C"), booleans map to 1 and 0.
func (o Object) Float(key string) (float64, bool) {
	switch v := o[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(v))
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (o Object) String(key string) (string, bool) {
	v, ok := o[key].(string)
	return v, ok
}

func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Model returns the model field, empty if absent.
func (o Object) Model() string {
	s, _ := o.String("model")
	return s
}

// ID formats an identifier field as printed by the decoder: integral numbers
// in decimal, strings verbatim.
func (o Object) ID(key string) string {
	switch v := o[key].(type) {
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return FormatValue(v)
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// Hex formats an integer identifier as at least four upper case hex digits.
// Strings such as "0x2c87" are normalized the same way.
func (o Object) Hex(key string) string {
	switch v := o[key].(type) {
	case float64:
		return fmt.Sprintf("%04X", int64(v))
	case string:
		s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), "0x")
		if n, err := strconv.ParseUint(s, 16, 64); err == nil {
			return fmt.Sprintf("%04X", n)
		}
		return strings.ToUpper(s)
	}
	return ""
}

// JoinID joins the given identifier fields with colons, skipping absent ones.
func (o Object) JoinID(keys ...string) string {
	var parts []string
	for _, k := range keys {
		if id := o.ID(k); id != "" {
			parts = append(parts, id)
		}
	}
	return strings.Join(parts, ":")
}

var timeLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// Time returns the message time in epoch seconds. Times without a zone are
// taken as UTC.
func (o Object) Time() (int64, bool) {
	switch v := o["time"].(type) {
	case float64:
		return int64(v), true
	case string:
		v = strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
				return t.Unix(), true
			}
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}
