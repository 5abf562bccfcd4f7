package oregon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bemasher/rtlwx/parse"
)

var factory = parse.NewFactory(parse.NewRegistry(Decoders...))

func create(t *testing.T, lines ...string) *parse.Packet {
	t.Helper()
	pkt, err := factory.Create(lines)
	require.NoError(t, err)
	require.NotNil(t, pkt)
	return pkt
}

func TestTHGR122NText(t *testing.T) {
	pkt := create(t,
		"2016-09-12 21:44:55     :       OS :    THGR122N",
		"House Code:      96",
		"Channel:         3",
		"Battery:         OK",
		"Temperature:     27.30 C",
		"Humidity:        36 %",
	)

	assert.Equal(t, map[string]float64{
		"temperature.3:96.OSTHGR122NPacket": 27.3,
		"humidity.3:96.OSTHGR122NPacket":    36,
		"battery.3:96.OSTHGR122NPacket":     0,
	}, pkt.Fields)
}

func TestTHGR122NJSON(t *testing.T) {
	pkt := create(t, `{"time" : "2019-01-01 00:00:00", "brand" : "OS", "model" : "Oregon-THGR122N", "id" : 96, "channel" : 3, "battery_ok" : 1, "temperature_C" : 27.3, "humidity" : 36}`)

	assert.Equal(t, map[string]float64{
		"temperature.3:96.OSTHGR122NPacket": 27.3,
		"humidity.3:96.OSTHGR122NPacket":    36,
		"battery.3:96.OSTHGR122NPacket":     0,
	}, pkt.Fields)
}

func TestTHGR810Text(t *testing.T) {
	for _, header := range []string{
		"2016-09-01 22:05:47 :Weather Sensor THGR810",
		"2016-11-04 02:21:37 :OS :THGR810",
	} {
		pkt := create(t,
			header,
			"House Code: 122",
			"Channel: 1",
			"Battery: OK",
			"Celcius: 22.20 C",
			"Fahrenheit: 71.96 F",
			"Humidity: 57 %",
		)

		assert.Equal(t, map[string]float64{
			"temperature.1:122.OSTHGR810Packet":   22.2,
			"temperature_F.1:122.OSTHGR810Packet": 71.96,
			"humidity.1:122.OSTHGR810Packet":      57,
			"battery.1:122.OSTHGR810Packet":       0,
		}, pkt.Fields, header)
	}
}

func TestTHR228NText(t *testing.T) {
	pkt := create(t,
		"2016-09-09 11:59:10 :   Thermo Sensor THR228N",
		"House Code:      111",
		"Channel:         2",
		"Battery:         LOW",
		"Temperature:     24.70 C",
	)

	assert.Equal(t, map[string]float64{
		"temperature.2:111.OSTHR228NPacket": 24.7,
		"battery.2:111.OSTHR228NPacket":     1,
	}, pkt.Fields)
}

func TestPCR800Text(t *testing.T) {
	pkt := create(t,
		"2016-11-03 04:36:23 : OS : PCR800",
		"House Code: 93",
		"Channel: 0",
		"Battery: OK",
		"Rain Rate: 0.0 in/hr",
		"Total Rain: 41.0 in",
	)

	assert.Equal(t, parse.US, pkt.Units)
	assert.Equal(t, map[string]float64{
		"rain_rate.0:93.OSPCR800Packet":  0,
		"rain_total.0:93.OSPCR800Packet": 41,
		"battery.0:93.OSPCR800Packet":    0,
	}, pkt.Fields)
}

func TestPCR800JSON(t *testing.T) {
	pkt := create(t, `{"time" : "2019-01-01 00:00:00", "model" : "Oregon-PCR800", "id" : 93, "channel" : 0, "battery_ok" : 1, "rain_rate_in_h" : 0.5, "rain_in" : 41.0}`)

	assert.Equal(t, 0.5, pkt.Fields["rain_rate.0:93.OSPCR800Packet"])
	assert.Equal(t, 41.0, pkt.Fields["rain_total.0:93.OSPCR800Packet"])
}

func TestWGR800Text(t *testing.T) {
	pkt := create(t,
		"2016-11-03 04:36:34 : OS : WGR800",
		"House Code: 85",
		"Channel: 0",
		"Battery: OK",
		"Gust: 1.1 m/s",
		"Average: 0.9 m/s",
		"Direction: 22.5 degrees",
	)

	assert.Equal(t, parse.MetricWX, pkt.Units)
	assert.Equal(t, map[string]float64{
		"wind_gust.0:85.OSWGR800Packet":  1.1,
		"wind_speed.0:85.OSWGR800Packet": 0.9,
		"wind_dir.0:85.OSWGR800Packet":   22.5,
		"battery.0:85.OSWGR800Packet":    0,
	}, pkt.Fields)
}

func TestBTHR968JSON(t *testing.T) {
	pkt := create(t, `{"time" : "2019-01-01 00:00:00", "model" : "Oregon-BTHR968", "id" : 5, "channel" : 0, "battery_ok" : 1, "temperature_C" : 20.1, "humidity" : 44, "pressure_hPa" : 1002}`)
	assert.Equal(t, 1002.0, pkt.Fields["pressure.0:5.OSBTHR968Packet"])
}

func TestUVJSON(t *testing.T) {
	pkt := create(t, `{"model" : "Oregon-UV800", "id" : 5, "channel" : 1, "uv" : 3}`)
	assert.Equal(t, "OSUV800Packet", pkt.Decoder)
	assert.Equal(t, 3.0, pkt.Fields["uv.1:5.OSUV800Packet"])
}
