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

// Package oregon decodes Oregon Scientific sensors. The model token, such as
// THGR122N, appears both in the text header and in the JSON model name, so
// each decoder handles both forms.
//
// Text messages carry the sensor identity on separate lines:
//
//	2016-09-12 21:44:55     :       OS :    THGR122N
//	House Code:      96
//	Channel:         3
//	Battery:         OK
//	Temperature:     27.30 C
//	Humidity:        36 %
package oregon

import (
	"regexp"

	"github.com/bemasher/rtlwx/parse"
)

func init() {
	parse.Register(Decoders...)
}

// Sensor ids are <channel>:<house code>.
var sensorID = parse.JoinIDs("channel", "id")

var (
	inches  = regexp.MustCompile(`([\d.]+) in`)
	speed   = regexp.MustCompile(`([\d.]+) m`)
	degrees = regexp.MustCompile(`([\d.]+) degrees`)
)

// withIdentity adds the labels every Oregon text message carries.
func withIdentity(labels parse.Labels) parse.Labels {
	labels["House Code"] = parse.Label{Name: "house_code"}
	labels["Channel"] = parse.Label{Name: "channel"}
	labels["Battery"] = parse.Label{Name: "battery", Convert: parse.BatteryStatus}
	return labels
}

func text(name string, units parse.Units, labels parse.Labels) parse.TextFunc {
	return parse.NewText(name, units, withIdentity(labels), "channel", "house_code")
}

var (
	temperature = parse.Label{Name: "temperature", Pattern: parse.Celsius, Convert: parse.Float}
	humidity    = parse.Label{Name: "humidity", Pattern: parse.Percent, Convert: parse.Float}
)

var Decoders = []parse.Decoder{
	{
		Name:       "OSTHGR122NPacket",
		Identifier: "THGR122N",
		Text: text("OSTHGR122NPacket", parse.Metric, parse.Labels{
			"Temperature": temperature,
			"Humidity":    humidity,
		}),
		JSON: parse.NewJSON("OSTHGR122NPacket", parse.Metric, sensorID,
			parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery),
	},
	{
		// Printed as "Weather Sensor THGR810" in mid 2016, "OS :THGR810" later.
		Name:       "OSTHGR810Packet",
		Identifier: "THGR810",
		Text: text("OSTHGR810Packet", parse.Metric, parse.Labels{
			"Celcius":     temperature,
			"Temperature": temperature,
			"Fahrenheit":  {Name: "temperature_F", Pattern: parse.Fahrenheit, Convert: parse.Float},
			"Humidity":    humidity,
		}),
		JSON: parse.NewJSON("OSTHGR810Packet", parse.Metric, sensorID,
			parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery),
	},
	{
		Name:       "OSTHR228NPacket",
		Identifier: "THR228N",
		Text: text("OSTHR228NPacket", parse.Metric, parse.Labels{
			"Temperature": temperature,
		}),
		JSON: parse.NewJSON("OSTHR228NPacket", parse.Metric, sensorID,
			parse.FieldTemperature, parse.FieldBattery),
	},
	{
		Name:       "OSPCR800Packet",
		Identifier: "PCR800",
		Text: text("OSPCR800Packet", parse.US, parse.Labels{
			"Rain Rate":  {Name: "rain_rate", Pattern: inches, Convert: parse.Float},
			"Total Rain": {Name: "rain_total", Pattern: inches, Convert: parse.Float},
		}),
		JSON: parse.NewJSON("OSPCR800Packet", parse.US, sensorID,
			parse.FieldRainRate, parse.FieldRainTotal, parse.FieldBattery),
	},
	{
		Name:       "OSWGR800Packet",
		Identifier: "WGR800",
		Text: text("OSWGR800Packet", parse.MetricWX, parse.Labels{
			"Gust":      {Name: "wind_gust", Pattern: speed, Convert: parse.Float},
			"Average":   {Name: "wind_speed", Pattern: speed, Convert: parse.Float},
			"Direction": {Name: "wind_dir", Pattern: degrees, Convert: parse.Float},
		}),
		JSON: parse.NewJSON("OSWGR800Packet", parse.MetricWX, sensorID,
			parse.FieldWindGust, parse.FieldWindSpeed, parse.FieldWindDir, parse.FieldBattery),
	},

	{Name: "OSBTHR968Packet", Identifier: "BTHR968", JSON: parse.NewJSON("OSBTHR968Packet", parse.Metric, sensorID,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldPressure, parse.FieldBattery)},
	{Name: "OSBTHGN129Packet", Identifier: "BTHGN129", JSON: parse.NewJSON("OSBTHGN129Packet", parse.Metric, sensorID,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldPressure, parse.FieldBattery)},
	{Name: "OSTHGR968Packet", Identifier: "THGR968", JSON: parse.NewJSON("OSTHGR968Packet", parse.Metric, sensorID,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
	{Name: "OSRTGN318Packet", Identifier: "RTGN318", JSON: parse.NewJSON("OSRTGN318Packet", parse.Metric, sensorID,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)},
	{Name: "OSTHN802Packet", Identifier: "THN802", JSON: parse.NewJSON("OSTHN802Packet", parse.Metric, sensorID,
		parse.FieldTemperature, parse.FieldBattery)},
	{Name: "OSUVR128Packet", Identifier: "UVR128", JSON: parse.NewJSON("OSUVR128Packet", parse.Metric, sensorID,
		parse.FieldUV, parse.FieldBattery)},
	{Name: "OSUV800Packet", Identifier: "UV800", JSON: parse.NewJSON("OSUV800Packet", parse.Metric, sensorID,
		parse.FieldUV, parse.FieldBattery)},
}
