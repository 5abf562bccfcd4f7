package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// A Converter turns the text of a value into a number.
type Converter func(string) (float64, error)

// A Label describes how to read one "Label: value" line. Pattern, if set,
// must capture the numeric part of the value in its first group. Labels
// without a Converter are identifiers and are kept as text.
type Label struct {
	Name    string
	Pattern *regexp.Regexp
	Convert Converter
}

// Labels maps the label printed by rtl_433 to how it is read.
type Labels map[string]Label

// Parse reads the detail lines of a text message, skipping the header at
// lines[0]. Unknown labels, lines without exactly one colon and values that
// fail to convert are skipped.
func (ls Labels) Parse(lines []string) (obs map[string]float64, ids map[string]string) {
	obs = make(map[string]float64)
	ids = make(map[string]string)

	if len(lines) < 2 {
		return
	}

	for _, line := range lines[1:] {
		if strings.Count(line, ":") != 1 {
			log.Debugf("skip line %q", line)
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		name, value := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

		label, known := ls[name]
		if !known {
			log.Debugf("ignoring %s:%s", name, value)
			continue
		}

		if label.Pattern != nil {
			m := label.Pattern.FindStringSubmatch(value)
			if m == nil {
				log.Debugf("regex failed for %s:%q", name, value)
				continue
			}
			value = m[1]
		}

		if label.Convert == nil {
			ids[label.Name] = NormalizeID(value)
			continue
		}

		v, err := label.Convert(value)
		if err != nil {
			log.Debugf("parse failed for line %q: %s", line, err)
			continue
		}
		obs[label.Name] = v
	}

	return
}

// Float parses a decimal number.
func Float(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, errors.Wrap(err, "float")
}

// BatteryStatus maps "OK" to 0 and "LOW" to 1.
func BatteryStatus(s string) (float64, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), "OK"):
		return 0, nil
	case isLow(s):
		return 1, nil
	}
	return 0, errors.Errorf("unknown battery status %q", s)
}

// NormalizeID prints integer identifiers without leading zeros so text and
// JSON messages from one sensor agree.
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

// Common patterns for values printed with a unit.
var (
	Celsius    = regexp.MustCompile(`([-\d.]+) C`)
	Fahrenheit = regexp.MustCompile(`([-\d.]+) F`)
	Percent    = regexp.MustCompile(`([\d.]+) %`)
)
