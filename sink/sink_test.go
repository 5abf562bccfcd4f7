package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bemasher/rtlwx/metric"
	"github.com/bemasher/rtlwx/parse"
)

func packet() *parse.Packet {
	pkt := parse.NewPacket(1472601440, parse.Metric)
	pkt.Set("inTemp", 26.7)
	pkt.Set("rain", 0.5)
	return pkt
}

func TestWriterFormats(t *testing.T) {
	for _, tc := range []struct {
		format, want string
	}{
		{"plain", "{dateTime:1472601440 usUnits:16 inTemp:26.7 rain:0.5}\n"},
		{"JSON", `{"dateTime":1472601440,"inTemp":26.7,"rain":0.5,"usUnits":16}` + "\n"},
		{"csv", "1472601440,16,inTemp=26.7,rain=0.5\n"},
	} {
		buf := &bytes.Buffer{}
		w, err := NewWriter(buf, tc.format)
		require.NoError(t, err)

		require.NoError(t, w.Send(context.Background(), packet()))
		assert.Equal(t, tc.want, buf.String(), tc.format)
	}
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, "xml")
	assert.Error(t, err)
}

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	p.msgs = append(p.msgs, published{subject, data})
	return p.err
}

func TestNATS(t *testing.T) {
	p := &fakePublisher{}
	s := NewNATS(p, "")

	require.NoError(t, s.Send(context.Background(), packet()))
	require.Len(t, p.msgs, 1)
	assert.Equal(t, DefaultSubject, p.msgs[0].subject)

	var got map[string]float64
	require.NoError(t, json.Unmarshal(p.msgs[0].data, &got))
	assert.Equal(t, map[string]float64{
		"dateTime": 1472601440,
		"usUnits":  16,
		"inTemp":   26.7,
		"rain":     0.5,
	}, got)

	assert.NoError(t, s.Close())
}

type execed struct {
	sql  string
	args []any
}

type fakeExecer struct {
	calls []execed
	err   error
}

func (e *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.calls = append(e.calls, execed{sql, args})
	return pgconn.NewCommandTag("INSERT 0 1"), e.err
}

func TestPostgres(t *testing.T) {
	db := &fakeExecer{}
	s, err := NewPostgres(db, "weather.packets")
	require.NoError(t, err)

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Send(context.Background(), packet()))
	require.Len(t, db.calls, 2)

	assert.Contains(t, db.calls[0].sql, `CREATE TABLE IF NOT EXISTS "weather"."packets"`)
	assert.Equal(t, `INSERT INTO "weather"."packets" (date_time, us_units, fields) VALUES ($1, $2, $3)`, db.calls[1].sql)

	args := db.calls[1].args
	require.Len(t, args, 3)
	assert.Equal(t, time.Date(2016, 8, 30, 23, 57, 20, 0, time.UTC), args[0])
	assert.Equal(t, int16(16), args[1])
	assert.JSONEq(t, `{"inTemp":26.7,"rain":0.5}`, string(args[2].([]byte)))
}

func TestPostgresDefaultTable(t *testing.T) {
	s, err := NewPostgres(&fakeExecer{}, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.insert, `INSERT INTO "sdr_packets"`))

	_, err = NewPostgres(&fakeExecer{}, "weather.")
	assert.Error(t, err)
}

func TestPostgresError(t *testing.T) {
	s, err := NewPostgres(&fakeExecer{err: errors.New("connection refused")}, "")
	require.NoError(t, err)
	assert.Error(t, s.Send(context.Background(), packet()))
}

func TestMulti(t *testing.T) {
	m := metric.New(prometheus.NewRegistry())
	good := &fakePublisher{}
	bad := &fakePublisher{err: errors.New("no responders")}
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, "plain")
	require.NoError(t, err)

	s := NewMulti(m)
	s.Add("nats", NewNATS(bad, "a"))
	s.Add("stdout", w)
	s.Add("backup", NewNATS(good, "b"))
	assert.Equal(t, 3, s.Len())

	err = s.Send(context.Background(), packet())
	assert.EqualError(t, err, "nats: no responders")
	assert.NotEmpty(t, buf.String())
	assert.Len(t, good.msgs, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SinkErrors.WithLabelValues("nats")))

	assert.NoError(t, s.Close())
}
