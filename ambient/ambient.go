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

// Package ambient decodes Ambient Weather thermo-hygrometers.
package ambient

import (
	"github.com/bemasher/rtlwx/parse"
)

func init() {
	parse.Register(Decoders...)
}

// The F007TH reports in degF, older rtl_433 releases announce it with a
// spaced model name.
var f007th = parse.NewJSON("AmbientF007THPacket", parse.US, parse.JoinIDs("channel", "id"),
	parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)

var Decoders = []parse.Decoder{
	{Name: "AmbientF007THPacket", Identifier: "Ambientweather-F007TH", JSON: f007th},
	{Name: "AmbientF007THPacket", Identifier: "Ambient Weather F007TH", JSON: f007th},
	{Name: "AmbientWH31EPacket", Identifier: "Ambientweather-WH31E", JSON: parse.NewJSON("AmbientWH31EPacket", parse.Metric, parse.JoinIDs("channel", "id"),
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
}
