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

// Package fineoffset decodes Fine Offset sensors, including the units sold
// under the Ecowitt name.
package fineoffset

import (
	"github.com/bemasher/rtlwx/parse"
)

func init() {
	parse.Register(Decoders...)
}

const WH1080Name = "FOWH1080Packet"

var (
	wh1080ID = parse.AnyID("id", "station_id", "uv_sensor_id")
	wh1080   = parse.NewJSON(WH1080Name, parse.Metric, wh1080ID,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldWindDir,
		parse.FieldWindSpeed, parse.FieldWindGust, parse.FieldRainTotal,
		parse.FieldBattery, parse.FieldUVIndex, parse.FieldIlluminance)

	// The WH24 and WH65B share one message layout.
	wh24Fields = []parse.Field{
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldWindDir,
		parse.FieldWindSpeed, parse.FieldWindGust, parse.FieldRainTotal,
		parse.FieldUV, parse.FieldUVIndex, parse.FieldIlluminance, parse.FieldBattery,
	}
)

var Decoders = []parse.Decoder{
	{Name: WH1080Name, Identifier: "Fine Offset WH1080 weather station", Text: parseWH1080},
	{Name: WH1080Name, Identifier: "Fineoffset-WHx080", JSON: wh1080},
	{Name: WH1080Name, Identifier: "Fine Offset Electronics WH1080", JSON: wh1080},

	{Name: "FOWH24Packet", Identifier: "Fineoffset-WH24", JSON: parse.NewJSON("FOWH24Packet", parse.MetricWX, parse.ID("id"), wh24Fields...)},
	{Name: "FOWH65BPacket", Identifier: "Fineoffset-WH65B", JSON: parse.NewJSON("FOWH65BPacket", parse.MetricWX, parse.ID("id"), wh24Fields...)},

	{Name: "FOWH25Packet", Identifier: "Fineoffset-WH25", JSON: parse.NewJSON("FOWH25Packet", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldPressure, parse.FieldBattery)},
	{Name: "FOWH32BPacket", Identifier: "Fineoffset-WH32B", JSON: parse.NewJSON("FOWH32BPacket", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldPressure, parse.FieldBattery)},

	{Name: "FOWH2Packet", Identifier: "Fineoffset-WH2", JSON: parse.NewJSON("FOWH2Packet", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity)},
	{Name: "FOWH5Packet", Identifier: "Fineoffset-WH5", JSON: parse.NewJSON("FOWH5Packet", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldHumidity)},

	{Name: "FOWH51Packet", Identifier: "Fineoffset-WH51", JSON: parse.NewJSON("FOWH51Packet", parse.Metric, parse.ID("id"),
		parse.FieldMoisture, parse.FieldBattery, parse.FieldBatteryLevel)},

	{Name: "FOWH0290Packet", Identifier: "Fineoffset-WH0290", JSON: parse.NewJSON("FOWH0290Packet", parse.Metric, parse.ID("id"),
		parse.Field{Name: "pm2_5", Extract: parse.FirstKey("pm2_5_ug_m3")},
		parse.Field{Name: "pm10", Extract: parse.FirstKey("pm10_ug_m3", "estimated_pm10_0_ug_m3")},
		parse.FieldBattery, parse.FieldBatteryLevel)},

	{Name: "FOWH31LPacket", Identifier: "FineOffset-WH31L", JSON: parse.NewJSON("FOWH31LPacket", parse.Metric, parse.ID("id"),
		parse.FieldStrikes, parse.FieldDistance, parse.FieldBattery)},

	{Name: "FOWH0530Packet", Identifier: "Fineoffset-WH0530", JSON: parse.NewJSON("FOWH0530Packet", parse.MetricWX, parse.ID("id"),
		parse.FieldTemperature, parse.FieldRainTotal, parse.FieldBattery)},

	{Name: "EcowittWH40Packet", Identifier: "EcoWitt-WH40", JSON: parse.NewJSON("EcowittWH40Packet", parse.MetricWX, parse.ID("id"),
		parse.FieldRainTotal, parse.FieldBattery)},
	{Name: "EcowittWH53Packet", Identifier: "EcoWitt-WH53", JSON: parse.NewJSON("EcowittWH53Packet", parse.Metric, parse.ID("id"),
		parse.FieldTemperature, parse.FieldBattery)},
}

// 2016-09-02 22:26:05 :Fine Offset WH1080 weather station
// Msg type: 0
// StationID: 0026
// Temperature: 19.9 C
// Humidity: 78 %
// Wind string: E
// Wind degrees: 90
// Wind avg speed: 0.00
// Wind gust: 1.22
// Total rainfall: 144.3
// Battery: OK
//
// Wind speeds are km/h, rainfall is mm.
var wh1080Labels = parse.Labels{
	"StationID":      {Name: "station_id"},
	"Temperature":    {Name: "temperature", Pattern: parse.Celsius, Convert: parse.Float},
	"Humidity":       {Name: "humidity", Pattern: parse.Percent, Convert: parse.Float},
	"Wind degrees":   {Name: "wind_dir", Convert: parse.Float},
	"Wind avg speed": {Name: "wind_speed", Convert: parse.Float},
	"Wind gust":      {Name: "wind_gust", Convert: parse.Float},
	"Total rainfall": {Name: "rain_total", Convert: millimeters},
	"Battery":        {Name: "battery", Convert: parse.BatteryStatus},
}

var parseWH1080 = parse.NewText(WH1080Name, parse.Metric, wh1080Labels, "station_id")

// millimeters reads a rain amount in mm as cm, the METRIC rain unit.
func millimeters(s string) (float64, error) {
	v, err := parse.Float(s)
	return parse.Metric.Rain(v), err
}
