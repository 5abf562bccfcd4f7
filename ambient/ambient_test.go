package ambient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bemasher/rtlwx/parse"
)

func TestF007TH(t *testing.T) {
	f := parse.NewFactory(parse.NewRegistry(Decoders...))

	for _, model := range []string{"Ambientweather-F007TH", "Ambient Weather F007TH"} {
		pkt, err := f.Create([]string{`{"time" : "2017-01-01 00:00:00", "model" : "` + model + `", "device" : 233, "id" : 233, "channel" : 1, "battery_ok" : 1, "temperature_F" : 71.6, "humidity" : 39}`})
		require.NoError(t, err)

		assert.Equal(t, parse.US, pkt.Units)
		assert.Equal(t, map[string]float64{
			"temperature.1:233.AmbientF007THPacket": 71.6,
			"humidity.1:233.AmbientF007THPacket":    39,
			"battery.1:233.AmbientF007THPacket":     0,
		}, pkt.Fields, model)
	}
}

func TestWH31E(t *testing.T) {
	f := parse.NewFactory(parse.NewRegistry(Decoders...))

	pkt, err := f.Create([]string{`{"time" : "2019-01-01 00:00:00", "model" : "Ambientweather-WH31E", "id" : 173, "channel" : 2, "battery_ok" : 0, "temperature_C" : 22.5, "humidity" : 41}`})
	require.NoError(t, err)

	assert.Equal(t, parse.Metric, pkt.Units)
	assert.Equal(t, 22.5, pkt.Fields["temperature.2:173.AmbientWH31EPacket"])
	assert.Equal(t, 1.0, pkt.Fields["battery.2:173.AmbientWH31EPacket"])
}
