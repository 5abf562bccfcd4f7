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

// Package hideki decodes Hideki sensors, sold under the Cresta, TFA and
// Bresser brands among others.
package hideki

import (
	"github.com/bemasher/rtlwx/parse"
)

func init() {
	parse.Register(Decoders...)
}

const TS04Name = "HidekiTS04Packet"

// 2016-09-01 21:41:15 :   HIDEKI TS04 sensor
// Rolling Code:    5
// Channel:         1
// Battery:         OK
// Temperature:     22.4 C
// Humidity:        51 %
var ts04Labels = parse.Labels{
	"Rolling Code": {Name: "rolling_code"},
	"Channel":      {Name: "channel"},
	"Battery":      {Name: "battery", Convert: parse.BatteryStatus},
	"Temperature":  {Name: "temperature", Pattern: parse.Celsius, Convert: parse.Float},
	"Humidity":     {Name: "humidity", Pattern: parse.Percent, Convert: parse.Float},
}

// The rolling code changes when the batteries are replaced.
var sensorID = parse.JoinIDs("channel", "id")

var Decoders = []parse.Decoder{
	{
		Name:       TS04Name,
		Identifier: "HIDEKI TS04 sensor",
		Text:       parse.NewText(TS04Name, parse.Metric, ts04Labels, "channel", "rolling_code"),
	},
	{Name: TS04Name, Identifier: "Hideki-TS04", JSON: parse.NewJSON(TS04Name, parse.Metric, sensorID,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
	{Name: "HidekiWindPacket", Identifier: "Hideki-Wind", JSON: parse.NewJSON("HidekiWindPacket", parse.Metric, sensorID,
		parse.FieldTemperature, parse.FieldWindSpeed, parse.FieldWindGust, parse.FieldWindDir, parse.FieldBattery)},
	{Name: "HidekiRainPacket", Identifier: "Hideki-Rain", JSON: parse.NewJSON("HidekiRainPacket", parse.Metric, sensorID,
		parse.FieldRainTotal, parse.FieldBattery)},
	{Name: "HidekiTemperaturePacket", Identifier: "Hideki-Temperature", JSON: parse.NewJSON("HidekiTemperaturePacket", parse.Metric, sensorID,
		parse.FieldTemperature, parse.FieldBattery)},
}
