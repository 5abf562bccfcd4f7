package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TimeLayout is the timestamp format rtl_433 prints in UTC mode.
const TimeLayout = "2006-01-02 15:04:05"

var (
	// ErrUnrecognized is returned when no decoder matches a message.
	ErrUnrecognized = errors.New("unrecognized message")
	// ErrMalformed is returned for messages that cannot be read at all, or
	// that a decoder recognized but could not extract anything from.
	ErrMalformed = errors.New("malformed message")
)

var headerPattern = regexp.MustCompile(`(\d{4}-\d\d-\d\d \d\d:\d\d:\d\d)\s+:*(.*)`)

// Header extracts the timestamp, as epoch seconds, and the payload from the
// first line of a text message.
func Header(line string) (ts int64, payload string, ok bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}

	t, err := time.ParseInLocation(TimeLayout, m[1], time.UTC)
	if err != nil {
		log.Debugf("parse timestamp failed for %q: %s", line, err)
		return 0, "", false
	}

	payload = strings.TrimSpace(m[2])
	return t.Unix(), payload, payload != ""
}

// Factory turns one message's lines into a canonical packet.
type Factory struct {
	Registry *Registry

	// Now supplies the time for JSON messages that carry none.
	Now func() time.Time
}

func NewFactory(r *Registry) *Factory {
	return &Factory{Registry: r, Now: time.Now}
}

// Create decodes a message. An empty group yields neither a packet nor an
// error. Otherwise the error, if any, has cause ErrUnrecognized or
// ErrMalformed.
func (f *Factory) Create(lines []string) (*Packet, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	first := strings.TrimSpace(lines[0])
	if strings.HasPrefix(first, "{") {
		return f.createJSON(first)
	}

	return f.createText(lines)
}

func (f *Factory) createJSON(line string) (*Packet, error) {
	obj, err := DecodeObject(line)
	if err != nil {
		log.Debugf("parse json failed for %q: %s", line, err)
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}

	model := obj.Model()
	if model == "" {
		return nil, errors.Wrap(ErrMalformed, "json message has no model")
	}

	d, ok := f.Registry.MatchJSON(model)
	if !ok {
		return nil, errors.Wrapf(ErrUnrecognized, "model %q", model)
	}

	if _, ok := obj.Time(); !ok {
		obj["time"] = float64(f.Now().Unix())
	}

	pkt := d.JSON(obj)
	if pkt == nil {
		return nil, errors.Wrapf(ErrMalformed, "%s: no observations in %q", d.Name, line)
	}

	return pkt, nil
}

func (f *Factory) createText(lines []string) (*Packet, error) {
	ts, payload, ok := Header(lines[0])
	if !ok {
		return nil, errors.Wrapf(ErrUnrecognized, "no timestamp in %q", lines[0])
	}

	d, ok := f.Registry.MatchText(payload)
	if !ok {
		return nil, errors.Wrapf(ErrUnrecognized, "payload %q", payload)
	}

	pkt := d.Text(ts, payload, lines)
	if pkt == nil {
		return nil, errors.Wrapf(ErrMalformed, "%s: no observations in %q", d.Name, lines[0])
	}

	return pkt, nil
}

// FromObject starts a packet stamped with the time of a JSON message.
func FromObject(obj Object, units Units) *Packet {
	ts, _ := obj.Time()
	return NewPacket(ts, units)
}
