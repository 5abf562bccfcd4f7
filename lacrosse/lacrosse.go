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

// Package lacrosse decodes La Crosse Technology weather stations and
// thermo-hygrometers.
package lacrosse

import (
	"regexp"
	"strings"

	"github.com/bemasher/rtlwx/parse"
)

func init() {
	parse.Register(Decoders...)
}

const WSName = "LaCrossePacket"

var Decoders = []parse.Decoder{
	{Name: WSName, Identifier: "LaCrosse WS", Text: parseWS},
	{Name: WSName, Identifier: "LaCrosse-WS", JSON: parse.NewJSON(WSName, parse.MetricWX, parse.JoinIDs("ws_id", "id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldWindSpeed,
		parse.FieldWindGust, parse.FieldWindDir, parse.FieldRainTotal)},

	{Name: "LaCrosseTXPacket", Identifier: "LaCrosse-TX", JSON: parse.NewJSON("LaCrosseTXPacket", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity)},
	{Name: "LaCrosseTX141THBv2Packet", Identifier: "LaCrosse-TX141", JSON: parse.NewJSON("LaCrosseTX141THBv2Packet", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
	{Name: "LaCrosseTX141WPacket", Identifier: "LaCrosse-TX141W", JSON: parse.NewJSON("LaCrosseTX141WPacket", parse.Metric, parse.ID("id"),
		parse.FieldWindSpeed, parse.FieldWindDir, parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
	{Name: "LaCrosseTX35DTHITPacket", Identifier: "LaCrosse-TX35DTHIT", JSON: parse.NewJSON("LaCrosseTX35DTHITPacket", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
	{Name: "LaCrosseBreezeProPacket", Identifier: "LaCrosse-BreezePro", JSON: parse.NewJSON("LaCrosseBreezeProPacket", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldWindSpeed, parse.FieldWindDir, parse.FieldBattery)},
}

// Each reading arrives as its own message, the header carries the station
// and sensor ids:
//
// 2016-09-08 00:43:52 :LaCrosse WS :9 :202
// Temperature: 21.0 C
// 2016-09-08 00:43:53 :LaCrosse WS :9 :202
// Wind speed: 0.0 m/s
// Direction: 67.500
// 2016-11-03 17:43:20 :LaCrosse WS :9 :202
// Rainfall: 850.04 mm
var wsLabels = parse.Labels{
	"Wind speed":  {Name: "wind_speed", Pattern: regexp.MustCompile(`([\d.]+) m/s`), Convert: parse.Float},
	"Direction":   {Name: "wind_dir", Convert: parse.Float},
	"Temperature": {Name: "temperature", Pattern: parse.Celsius, Convert: parse.Float},
	"Humidity":    {Name: "humidity", Convert: parse.Float},
	"Rainfall":    {Name: "rain_total", Pattern: regexp.MustCompile(`([\d.]+) mm`), Convert: parse.Float},
}

func parseWS(ts int64, payload string, lines []string) *parse.Packet {
	obs, _ := wsLabels.Parse(lines)

	var id string
	if parts := strings.Split(payload, ":"); len(parts) == 3 {
		id = strings.TrimSpace(parts[1]) + ":" + strings.TrimSpace(parts[2])
	}

	p := parse.NewPacket(ts, parse.MetricWX)
	p.Merge(obs)
	return p.Qualify(id, WSName)
}
