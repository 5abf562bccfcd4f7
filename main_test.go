package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bemasher/rtlwx/config"
	"github.com/bemasher/rtlwx/delta"
	"github.com/bemasher/rtlwx/driver"
	"github.com/bemasher/rtlwx/mapper"
	"github.com/bemasher/rtlwx/parse"
	"github.com/bemasher/rtlwx/sink"
)

const towerLine = "2016-08-30 23:57:20 Acurite tower sensor 0x37FC Ch A: 26.7 C 80.1 F 16 % RH"

type groups [][]string

func (g *groups) Next(ctx context.Context) ([]string, error) {
	if len(*g) == 0 {
		return nil, io.EOF
	}
	next := (*g)[0]
	*g = (*g)[1:]
	return next, nil
}

func newDriver(g ...[]string) *driver.Driver {
	src := groups(g)
	return driver.New(&src, parse.NewFactory(parse.DefaultRegistry), driver.Config{
		SensorMap: mapper.SensorMap{"inTemp": "temperature.37FC.AcuriteTowerPacket"},
		Deltas:    delta.DefaultSpec(),
	}, nil)
}

func TestRun(t *testing.T) {
	d := newDriver(
		[]string{towerLine},
		[]string{},
		[]string{"2016-08-30 23:57:40 Acurite tower sensor 0x37FC Ch A: 26.9 C 80.4 F 16 % RH"},
	)

	buf := &bytes.Buffer{}
	w, err := sink.NewWriter(buf, "plain")
	require.NoError(t, err)

	err = Run(context.Background(), d, w, false)
	assert.Equal(t, driver.ErrNotRunning, err)
	assert.Equal(t, "{dateTime:1472601440 usUnits:16 inTemp:26.7}\n{dateTime:1472601460 usUnits:16 inTemp:26.9}\n", buf.String())
}

func TestRunSingle(t *testing.T) {
	d := newDriver([]string{towerLine}, []string{towerLine})

	buf := &bytes.Buffer{}
	w, err := sink.NewWriter(buf, "csv")
	require.NoError(t, err)

	require.NoError(t, Run(context.Background(), d, w, true))
	assert.Equal(t, "1472601440,16,inTemp=26.7\n", buf.String())
}

func TestShowPackets(t *testing.T) {
	d := newDriver(
		[]string{},
		[]string{towerLine},
		[]string{`{"model" : "Some-Unsupported-Device"}`},
	)

	buf := &bytes.Buffer{}
	err := ShowPackets(context.Background(), d, buf, HideSet{}, false)
	assert.Equal(t, driver.ErrNotRunning, err)
	assert.Equal(t, "empty\n"+
		"out: "+towerLine+"\n"+
		"parsed: {dateTime:1472601440 usUnits:16 humidity.37FC.AcuriteTowerPacket:16 temperature.37FC.AcuriteTowerPacket:26.7 temperature_F.37FC.AcuriteTowerPacket:80.1}\n"+
		"out: {\"model\" : \"Some-Unsupported-Device\"}\n"+
		"unparsed: [\"{\\\"model\\\" : \\\"Some-Unsupported-Device\\\"}\"]\n",
		buf.String())
}

func TestShowPacketsHide(t *testing.T) {
	d := newDriver([]string{}, []string{towerLine}, []string{"garbage"})

	hide := HideSet{}
	require.NoError(t, hide.Set("out,empty,unparsed"))

	buf := &bytes.Buffer{}
	assert.NoError(t, ShowPackets(context.Background(), d, buf, hide, true))
	assert.Equal(t, "parsed: {dateTime:1472601440 usUnits:16 humidity.37FC.AcuriteTowerPacket:16 temperature.37FC.AcuriteTowerPacket:26.7 temperature_F.37FC.AcuriteTowerPacket:80.1}\n", buf.String())
}

func TestShowDetected(t *testing.T) {
	d := newDriver([]string{towerLine}, []string{towerLine}, []string{})

	buf := &bytes.Buffer{}
	assert.Equal(t, driver.ErrNotRunning, ShowDetected(context.Background(), d, buf))
	assert.Equal(t, "detected: .37FC.AcuriteTowerPacket [humidity.37FC.AcuriteTowerPacket temperature.37FC.AcuriteTowerPacket temperature_F.37FC.AcuriteTowerPacket]\n"+
		"SENSOR                    PACKETS\n"+
		".37FC.AcuriteTowerPacket  2\n",
		buf.String())
}

func TestListSupported(t *testing.T) {
	buf := &bytes.Buffer{}
	ListSupported(buf, parse.NewRegistry(
		parse.Decoder{Name: "AcuriteTowerPacket", Identifier: "Acurite tower sensor", Text: func(int64, string, []string) *parse.Packet { return nil }},
		parse.Decoder{Name: "AcuriteTowerPacket", Identifier: "Acurite-Tower", JSON: func(parse.Object) *parse.Packet { return nil }},
	))

	assert.Equal(t, "IDENTIFIER            DECODER             TEXT   JSON\n"+
		"Acurite tower sensor  AcuriteTowerPacket  true   false\n"+
		"Acurite-Tower         AcuriteTowerPacket  false  true\n",
		buf.String())
}

func TestHideSet(t *testing.T) {
	h := HideSet{}
	require.NoError(t, h.Set("Parsed, out"))
	assert.Equal(t, "out,parsed", h.String())
	assert.Error(t, h.Set("everything"))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "SDR_NATS_SUBJECT", EnvName("nats-subject"))
	assert.Equal(t, "SDR_LD_LIBRARY_PATH", EnvName("ld_library_path"))
}

func TestEnvOverride(t *testing.T) {
	defer flag.Set("nats-subject", sink.DefaultSubject)

	t.Setenv("SDR_NATS_SUBJECT", "weather.backyard")
	EnvOverride()
	assert.Equal(t, "weather.backyard", *natsSubject)

	cfg := config.Default()
	OverrideConfig(cfg)
	assert.Equal(t, "weather.backyard", cfg.NATS.Subject)
	assert.Empty(t, cfg.NATS.URL)
}
