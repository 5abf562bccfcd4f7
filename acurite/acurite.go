// RTLWX - A weather station driver for sensors decoded by rtl_433.
// Copyright (C) 2016 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package acurite decodes Acurite sensors: the tower, 5n1, 986 and 3n1
// families, the Atlas station, the 6045M lightning detector and the simple
// thermometers and rain gauges.
package acurite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/parse"
)

func init() {
	parse.Register(Decoders...)
}

const (
	TowerName     = "AcuriteTowerPacket"
	FiveInOneName = "Acurite5n1Packet"
	Acurite986    = "Acurite986Packet"
)

// Decoders lists every Acurite decoder.
var Decoders = []parse.Decoder{
	{Name: TowerName, Identifier: "Acurite tower sensor", Text: parseTower},
	{Name: TowerName, Identifier: "Acurite-Tower", JSON: parse.NewJSON(TowerName, parse.Metric, parse.HexID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},

	{Name: FiveInOneName, Identifier: "Acurite 5n1 sensor", Text: parse5n1},
	{Name: FiveInOneName, Identifier: "Acurite-5n1", JSON: parse.NewJSON(FiveInOneName, parse.Metric, parse.HexID("id"),
		parse.FieldWindSpeed, parse.FieldWindDir, parse.FieldRainTotal,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},

	{Name: Acurite986, Identifier: "Acurite 986 sensor", Text: parse986},
	{Name: Acurite986, Identifier: "Acurite-986", JSON: parse.NewJSON(Acurite986, parse.Metric, parse.HexID("id"),
		parse.FieldTemperature, parse.FieldBattery)},

	{Name: "AcuriteLightningPacket", Identifier: "Acurite-6045M", JSON: parse.NewJSON("AcuriteLightningPacket", parse.Metric, parse.HexID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldStrikes, parse.FieldDistance, parse.FieldBattery)},

	{Name: "Acurite606TXPacket", Identifier: "Acurite-606TX", JSON: parse.NewJSON("Acurite606TXPacket", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldBattery)},

	{Name: "Acurite00275MPacket", Identifier: "Acurite-00275rm", JSON: parse.NewJSON("Acurite00275MPacket", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity,
		parse.Field{Name: "temperature_probe", Extract: parse.TemperatureOf("temperature_1_C", "temperature_1_F")},
		parse.FieldBattery)},

	{Name: "Acurite3n1Packet", Identifier: "Acurite-3n1", JSON: parse.NewJSON("Acurite3n1Packet", parse.US, parse.HexID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldWindSpeed, parse.FieldBattery)},

	{Name: "AcuriteAtlasPacket", Identifier: "Acurite-Atlas", JSON: parse.NewJSON("AcuriteAtlasPacket", parse.US, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldWindSpeed, parse.FieldWindDir,
		parse.FieldRainTotal, parse.FieldUV, parse.FieldIlluminance, parse.FieldStrikes,
		parse.FieldDistance, parse.FieldBattery)},

	{Name: "AcuriteRain899Packet", Identifier: "Acurite-Rain899", JSON: parse.NewJSON("AcuriteRain899Packet", parse.US, parse.ID("id"),
		parse.FieldRainTotal, parse.FieldBattery)},

	{Name: "Acurite590TXPacket", Identifier: "Acurite-590TX", JSON: parse.NewJSON("Acurite590TXPacket", parse.Metric, parse.JoinIDs("channel", "id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},

	{Name: "Acurite609TXCPacket", Identifier: "Acurite-609TXC", JSON: parse.NewJSON("Acurite609TXCPacket", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
}

// 2016-08-30 23:57:20 Acurite tower sensor 0x37FC Ch A: 26.7 C 80.1 F 16 % RH
var towerPattern = regexp.MustCompile(`0x([0-9a-fA-F]+) Ch ([A-C]): (-?[\d.]+) C (-?[\d.]+) F ([\d]+) % RH`)

func parseTower(ts int64, payload string, lines []string) *parse.Packet {
	m := towerPattern.FindStringSubmatch(lines[0])
	if m == nil {
		log.Infof("%s: unrecognized data: %q", TowerName, lines[0])
		return nil
	}

	p := parse.NewPacket(ts, parse.Metric)
	set(p, "temperature", m[3])
	set(p, "temperature_F", m[4])
	set(p, "humidity", m[5])

	return p.Qualify(hexID(m[1]), TowerName)
}

// The 5n1 alternates between two message types:
//
// 2016-08-31 16:41:39 Acurite 5n1 sensor 0x0BFA Ch C, Msg 31, Wind 15 kmph / 9.3 mph 270.0^ W (3), rain gauge 0.00 in
// 2016-08-30 23:57:25 Acurite 5n1 sensor 0x0BFA Ch C, Msg 38, Wind 2 kmph / 1.2 mph, 21.3 C 70.3 F 70 % RH
//
// and reports the rain since reset once, when rtl_433 starts:
//
// 2016-09-27 17:09:34 Acurite 5n1 sensor 0x062C Ch A, Total rain fall since last reset: 2.00
var (
	fiveInOnePattern = regexp.MustCompile(`0x([0-9a-fA-F]+) Ch ([A-C]), (.*)`)
	fiveInOneRain    = regexp.MustCompile(`Total rain fall since last reset: ([\d.]+)`)
	fiveInOneMsg     = regexp.MustCompile(`Msg (\d+), (.*)`)
	fiveInOneMsg31   = regexp.MustCompile(`Wind ([\d.]+) kmph / ([\d.]+) mph ([\d.]+).*rain gauge ([\d.]+) in`)
	fiveInOneMsg38   = regexp.MustCompile(`Wind ([\d.]+) kmph / ([\d.]+) mph, (-?[\d.]+) C (-?[\d.]+) F ([\d.]+) % RH`)
)

func parse5n1(ts int64, payload string, lines []string) *parse.Packet {
	m := fiveInOnePattern.FindStringSubmatch(lines[0])
	if m == nil {
		log.Infof("%s: unrecognized data: %q", FiveInOneName, lines[0])
		return nil
	}
	id, rest := hexID(m[1]), m[3]

	p := parse.NewPacket(ts, parse.Metric)

	msg := fiveInOneMsg.FindStringSubmatch(rest)
	if msg == nil {
		rain := fiveInOneRain.FindStringSubmatch(rest)
		if rain == nil {
			log.Infof("%s: unknown message format: %q", FiveInOneName, lines[0])
			return nil
		}
		log.Infof("%s: rain since reset: %s", FiveInOneName, rain[1])
		setInches(p, "rain_since_reset", rain[1])
		return p.Qualify(id, FiveInOneName)
	}

	switch msg[1] {
	case "31":
		f := fiveInOneMsg31.FindStringSubmatch(msg[2])
		if f == nil {
			log.Infof("%s: no match for type 31: %q", FiveInOneName, msg[2])
			return nil
		}
		set(p, "wind_speed", f[1])
		set(p, "wind_speed_mph", f[2])
		set(p, "wind_dir", f[3])
		setInches(p, "rain_total", f[4])
	case "38":
		f := fiveInOneMsg38.FindStringSubmatch(msg[2])
		if f == nil {
			log.Infof("%s: no match for type 38: %q", FiveInOneName, msg[2])
			return nil
		}
		set(p, "wind_speed", f[1])
		set(p, "wind_speed_mph", f[2])
		set(p, "temperature", f[3])
		set(p, "temperature_F", f[4])
		set(p, "humidity", f[5])
	default:
		log.Infof("%s: unknown message type %s in line %q", FiveInOneName, msg[1], lines[0])
		return nil
	}

	return p.Qualify(id, FiveInOneName)
}

// 2016-10-28 02:28:20 Acurite 986 sensor 0x2c87 - 2F: 20.0 C 68 F
// 2016-10-31 15:23:54 Acurite 986 sensor 0x85ed - 1R: 16.7 C 62 F
var pattern986 = regexp.MustCompile(`0x([0-9a-fA-F]+) - (\w+): (-?[\d.]+) C (-?[\d.]+) F`)

func parse986(ts int64, payload string, lines []string) *parse.Packet {
	m := pattern986.FindStringSubmatch(lines[0])
	if m == nil {
		log.Infof("%s: unrecognized data: %q", Acurite986, lines[0])
		return nil
	}

	p := parse.NewPacket(ts, parse.Metric)
	set(p, "temperature", m[3])
	set(p, "temperature_F", m[4])

	return p.Qualify(hexID(m[1]), Acurite986)
}

// hexID formats a printed hex id the way JSON ids are formatted, so both
// outputs of one sensor share a key.
func hexID(s string) string {
	if n, err := strconv.ParseUint(s, 16, 64); err == nil {
		return fmt.Sprintf("%04X", n)
	}
	return strings.ToUpper(s)
}

func set(p *parse.Packet, name, value string) {
	if v, err := parse.Float(value); err == nil {
		p.Set(name, v)
	}
}

// setInches stores a rain amount printed in inches in the packet's units.
func setInches(p *parse.Packet, name, value string) {
	if v, err := parse.Float(value); err == nil {
		p.Set(name, p.Units.Rain(parse.InToMm(v)))
	}
}
