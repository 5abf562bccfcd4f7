package parse

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoText(ts int64, payload string, lines []string) *Packet {
	p := NewPacket(ts, Metric)
	p.Set("lines", float64(len(lines)))
	return p.Qualify("1", "Echo")
}

func echoJSON(obj Object) *Packet {
	p := FromObject(obj, Metric)
	p.Extract(obj, "temperature", Temperature)
	return p.Qualify(obj.ID("id"), "Echo")
}

func newTestFactory() *Factory {
	f := NewFactory(NewRegistry(
		Decoder{Name: "Echo", Identifier: "Echo sensor", Text: echoText},
		Decoder{Name: "Echo", Identifier: "Echo-TH", JSON: echoJSON},
	))
	f.Now = func() time.Time { return time.Unix(42, 0) }
	return f
}

func TestHeader(t *testing.T) {
	ts, payload, ok := Header("2016-08-30 23:57:20 :  Echo sensor 0x01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2016, 8, 30, 23, 57, 20, 0, time.UTC).Unix(), ts)
	assert.Equal(t, "Echo sensor 0x01", payload)

	_, _, ok = Header("House Code: 96")
	assert.False(t, ok)

	_, _, ok = Header("2016-13-45 99:57:20 Echo sensor")
	assert.False(t, ok)

	_, _, ok = Header("2016-08-30 23:57:20   ")
	assert.False(t, ok)
}

func TestCreateEmpty(t *testing.T) {
	pkt, err := newTestFactory().Create(nil)
	assert.Nil(t, pkt)
	assert.NoError(t, err)
}

func TestCreateText(t *testing.T) {
	pkt, err := newTestFactory().Create([]string{
		"2016-08-30 23:57:20 :Echo sensor",
		"Temperature: 1 C",
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, pkt.Fields["lines.1.Echo"])
}

func TestCreateTextUnknown(t *testing.T) {
	_, err := newTestFactory().Create([]string{"2016-08-30 23:57:20 Unknown thing"})
	assert.Equal(t, ErrUnrecognized, errors.Cause(err))

	_, err = newTestFactory().Create([]string{"garbage without timestamp"})
	assert.Equal(t, ErrUnrecognized, errors.Cause(err))
}

func TestCreateJSON(t *testing.T) {
	pkt, err := newTestFactory().Create([]string{
		`{"time" : "2016-08-30 23:57:20", "model" : "Echo-TH", "id" : 7, "temperature_C" : 20.5}`,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, 8, 30, 23, 57, 20, 0, time.UTC).Unix(), pkt.DateTime)
	assert.Equal(t, 20.5, pkt.Fields["temperature.7.Echo"])
}

func TestCreateJSONWithoutTime(t *testing.T) {
	pkt, err := newTestFactory().Create([]string{`{"model":"Echo-TH","id":7,"temperature_C":1}`})
	require.NoError(t, err)
	assert.Equal(t, int64(42), pkt.DateTime)
}

func TestCreateJSONFailures(t *testing.T) {
	f := newTestFactory()

	for _, tc := range []struct {
		line  string
		cause error
	}{
		{`{"model": "Some-Unsupported-Device", "id": 1, "temperature_C": 3}`, ErrUnrecognized},
		{`{"model": "Echo-TH", "id": 1}`, ErrMalformed},
		{`{"id": 1}`, ErrMalformed},
		{`{"model": `, ErrMalformed},
		{`{"model": 5}`, ErrMalformed},
	} {
		pkt, err := f.Create([]string{tc.line})
		assert.Nil(t, pkt, tc.line)
		assert.Equal(t, tc.cause, errors.Cause(err), tc.line)
	}
}
