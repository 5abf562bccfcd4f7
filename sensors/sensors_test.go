package sensors

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bemasher/rtlwx/acurite"
	"github.com/bemasher/rtlwx/ambient"
	"github.com/bemasher/rtlwx/bresser"
	"github.com/bemasher/rtlwx/delta"
	"github.com/bemasher/rtlwx/driver"
	"github.com/bemasher/rtlwx/fineoffset"
	"github.com/bemasher/rtlwx/hideki"
	"github.com/bemasher/rtlwx/lacrosse"
	"github.com/bemasher/rtlwx/mapper"
	"github.com/bemasher/rtlwx/misc"
	"github.com/bemasher/rtlwx/oregon"
	"github.com/bemasher/rtlwx/parse"
	"github.com/bemasher/rtlwx/segment"
)

func families() [][]parse.Decoder {
	return [][]parse.Decoder{
		acurite.Decoders,
		ambient.Decoders,
		bresser.Decoders,
		fineoffset.Decoders,
		hideki.Decoders,
		lacrosse.Decoders,
		misc.Decoders,
		oregon.Decoders,
	}
}

func TestAllRegistered(t *testing.T) {
	n := 0
	for _, family := range families() {
		n += len(family)
	}
	assert.Len(t, parse.DefaultRegistry.Decoders(), n)
}

func TestMatchOrder(t *testing.T) {
	decoders := parse.DefaultRegistry.Decoders()
	for i := 1; i < len(decoders); i++ {
		assert.GreaterOrEqual(t, len(decoders[i-1].Identifier), len(decoders[i].Identifier))
	}
}

// Every identifier must resolve to its own decoder, not to a shorter one it
// happens to contain.
func TestIdentifiersResolve(t *testing.T) {
	r := parse.DefaultRegistry
	for _, d := range r.Decoders() {
		if d.Text != nil {
			got, ok := r.MatchText(d.Identifier)
			require.True(t, ok, d.Identifier)
			assert.Equal(t, d.Name, got.Name, d.Identifier)
		}
		if d.JSON != nil {
			got, ok := r.MatchJSON(d.Identifier)
			require.True(t, ok, d.Identifier)
			assert.Equal(t, d.Name, got.Name, d.Identifier)
		}
	}
}

func TestQualification(t *testing.T) {
	f := parse.NewFactory(parse.DefaultRegistry)
	for _, lines := range [][]string{
		{"2016-08-30 23:57:20 Acurite tower sensor 0x37FC Ch A: 26.7 C 80.1 F 16 % RH"},
		{`{"time" : "2019-01-01 00:00:00", "model" : "Fineoffset-WH24", "id" : 140, "temperature_C" : 10.6, "rain_mm" : 1}`},
		{`{"time" : "2019-01-01 00:00:00", "model" : "Oregon-THGR122N", "id" : 96, "channel" : 3, "temperature_C" : 27.3}`},
		{`{"time" : "2019-01-01 00:00:00", "model" : "Nexus-TH", "id" : 1.5, "channel" : 1, "temperature_C" : 7}`},
	} {
		pkt, err := f.Create(lines)
		require.NoError(t, err)
		require.NotNil(t, pkt)

		for key := range pkt.Fields {
			_, _, dec, ok := parse.SplitKey(key)
			require.True(t, ok, key)
			assert.Equal(t, pkt.Decoder, dec, key)
		}
	}
}

type lines []string

func (l *lines) Next(ctx context.Context) ([]string, error) {
	if len(*l) == 0 {
		return nil, io.EOF
	}
	next := (*l)[0]
	*l = (*l)[1:]
	return []string{next}, nil
}

func TestEndToEnd(t *testing.T) {
	src := &lines{"2016-08-30 23:57:20 Acurite tower sensor 0x37FC Ch A: 26.7 C 80.1 F 16 % RH"}

	d := driver.New(src, parse.NewFactory(parse.DefaultRegistry), driver.Config{
		SensorMap: mapper.SensorMap{"inTemp": "temperature.37FC.AcuriteTowerPacket"},
		Deltas:    delta.DefaultSpec(),
	}, nil)

	pkt, err := d.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{dateTime:1472601440 usUnits:16 inTemp:26.7}", pkt.String())

	_, err = d.Next(context.Background())
	assert.Equal(t, driver.ErrNotRunning, err)
}

func feed(ls ...string) <-chan string {
	ch := make(chan string, len(ls))
	for _, l := range ls {
		ch <- l
	}
	close(ch)
	return ch
}

// drain runs raw rtl_433 output through the segmenter and driver and returns
// every emitted packet.
func drain(t *testing.T, sm mapper.SensorMap, raw ...string) (pkts []string) {
	t.Helper()

	d := driver.New(segment.New(feed(raw...), time.Minute), parse.NewFactory(parse.DefaultRegistry), driver.Config{
		SensorMap: sm,
	}, nil)

	for {
		pkt, err := d.Next(context.Background())
		if err == driver.ErrNotRunning {
			return
		}
		require.NoError(t, err)
		pkts = append(pkts, pkt.String())
	}
}

func TestJSONBurst(t *testing.T) {
	pkts := drain(t, mapper.SensorMap{"outTemp": "temperature.*.AcuriteTowerPacket"},
		`{"time" : "2016-08-30 23:57:20", "model" : "Acurite-Tower", "id" : 14332, "channel" : "A", "battery_ok" : 1, "temperature_C" : 20.0, "humidity" : 16}`,
		`{"time" : "2016-08-30 23:57:21", "model" : "Acurite-Tower", "id" : 14332, "channel" : "A", "battery_ok" : 1, "temperature_C" : 21.0, "humidity" : 16}`,
		`{"time" : "2016-08-30 23:57:22", "model" : "Acurite-Tower", "id" : 14332, "channel" : "A", "battery_ok" : 1, "temperature_C" : 22.0, "humidity" : 16}`,
	)

	assert.Equal(t, []string{
		"{dateTime:1472601440 usUnits:16 outTemp:20}",
		"{dateTime:1472601441 usUnits:16 outTemp:21}",
		"{dateTime:1472601442 usUnits:16 outTemp:22}",
	}, pkts)
}

func TestMixedFormats(t *testing.T) {
	pkts := drain(t, mapper.SensorMap{"outTemp": "temperature.37FC.AcuriteTowerPacket"},
		"2016-08-30 23:57:20 Acurite tower sensor 0x37FC Ch A: 20.0 C 68.0 F 16 % RH",
		`{"time" : "2016-08-30 23:57:21", "model" : "Acurite-Tower", "id" : 14332, "channel" : "A", "battery_ok" : 1, "temperature_C" : 21.0, "humidity" : 16}`,
		`{"time" : "2016-08-30 23:57:22", "model" : "Acurite-Tower", "id" : 14332, "channel" : "A", "battery_ok" : 1, "temperature_C" : 22.0, "humidity" : 16}`,
		"2016-08-30 23:57:23 Acurite tower sensor 0x37FC Ch A: 23.0 C 73.4 F 16 % RH",
		`{"time" : "2016-08-30 23:57:24", "model" : "Acurite-Tower", "id" : 14332, "channel" : "A", "battery_ok" : 1, "temperature_C" : 24.0, "humidity" : 16}`,
	)

	assert.Equal(t, []string{
		"{dateTime:1472601440 usUnits:16 outTemp:20}",
		"{dateTime:1472601441 usUnits:16 outTemp:21}",
		"{dateTime:1472601442 usUnits:16 outTemp:22}",
		"{dateTime:1472601443 usUnits:16 outTemp:23}",
		"{dateTime:1472601444 usUnits:16 outTemp:24}",
	}, pkts)
}

func TestUnknownModel(t *testing.T) {
	src := &lines{
		`{"time" : "2019-01-01 00:00:00", "model" : "Some-Unsupported-Device", "id" : 1, "temperature_C" : 20}`,
		`{"time" : "2019-01-01 00:00:00", "model" : "Some-Unsupported-Device", "channel" : "A"}`,
	}

	d := driver.New(src, parse.NewFactory(parse.DefaultRegistry), driver.Config{
		SensorMap: mapper.SensorMap{"outTemp": "temperature.*.*"},
	}, nil)

	pkt, err := d.Next(context.Background())
	assert.Nil(t, pkt)
	assert.Equal(t, driver.ErrNotRunning, err)
	assert.Empty(t, d.Detected())
}

func TestListSupported(t *testing.T) {
	names := parse.DefaultRegistry.Names()
	assert.Contains(t, names, "AcuriteTowerPacket")
	assert.Contains(t, names, "LaCrossePacket")
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, "Packet"), name)
	}
}

func BenchmarkCreate(b *testing.B) {
	f := parse.NewFactory(parse.DefaultRegistry)
	lines := [][]string{
		{"2016-08-30 23:57:20 Acurite tower sensor 0x37FC Ch A: 26.7 C 80.1 F 16 % RH"},
		{`{"time" : "2019-01-01 00:00:00", "model" : "Fineoffset-WH24", "id" : 140, "battery_ok" : 1, "temperature_C" : 10.6, "humidity" : 50, "wind_dir_deg" : 270, "wind_avg_m_s" : 1.1, "wind_max_m_s" : 2.2, "rain_mm" : 12.5}`},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		f.Create(lines[n%len(lines)])
	}
}
