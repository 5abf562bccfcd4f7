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

// Package bresser decodes Bresser weather stations and thermo-hygrometers.
package bresser

import (
	"github.com/bemasher/rtlwx/parse"
)

func init() {
	parse.Register(Decoders...)
}

// Observations reported by every multi-sensor station.
var stationFields = []parse.Field{
	parse.FieldTemperature,
	parse.FieldHumidity,
	parse.FieldWindGust,
	parse.FieldWindSpeed,
	parse.FieldWindDir,
	parse.FieldRainTotal,
	parse.FieldBattery,
}

func station(name string, extra ...parse.Field) parse.JSONFunc {
	fields := append(append([]parse.Field{}, stationFields...), extra...)
	return parse.NewJSON(name, parse.MetricWX, parse.ID("id"), fields...)
}

var Decoders = []parse.Decoder{
	{Name: "Bresser3CHPacket", Identifier: "Bresser-3CH", JSON: parse.NewJSON("Bresser3CHPacket", parse.Metric, parse.JoinIDs("channel", "id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
	{Name: "Bresser5in1Packet", Identifier: "Bresser-5in1", JSON: station("Bresser5in1Packet")},
	{Name: "Bresser6in1Packet", Identifier: "Bresser-6in1", JSON: station("Bresser6in1Packet", parse.FieldUV)},
	{Name: "Bresser7in1Packet", Identifier: "Bresser-7in1", JSON: station("Bresser7in1Packet", parse.FieldUV, parse.FieldIlluminance)},
	{Name: "BresserProRainGaugePacket", Identifier: "Bresser-ProRainGauge", JSON: parse.NewJSON("BresserProRainGaugePacket", parse.MetricWX, parse.ID("id"),
		parse.FieldTemperature, parse.FieldRainTotal, parse.FieldBattery)},
}
