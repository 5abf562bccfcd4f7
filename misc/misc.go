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

// Package misc decodes single-model sensors from assorted manufacturers.
package misc

import (
	"github.com/bemasher/rtlwx/parse"
)

func init() {
	parse.Register(Decoders...)
}

const CalibeurName = "CalibeurRF104Packet"

// 2016-09-08 00:43:52 :Calibeur RF-104
// ID: 1
// Temperature: 21.0 C
// Humidity: 50 %
var calibeurLabels = parse.Labels{
	"ID":          {Name: "id"},
	"Temperature": {Name: "temperature", Pattern: parse.Celsius, Convert: parse.Float},
	"Humidity":    {Name: "humidity", Pattern: parse.Percent, Convert: parse.Float},
}

var (
	fieldProbe  = parse.Field{Name: "temperature_probe", Extract: parse.TemperatureOf("temperature_2_C", "temperature_2_F")}
	fieldDepth  = parse.Field{Name: "depth", Extract: parse.Key("depth_cm")}
	fieldPower  = parse.Field{Name: "power", Extract: parse.Key("power_W")}
	fieldEnergy = parse.Field{Name: "energy_total", Extract: parse.Key("energy_kWh")}
)

var (
	byID      = parse.ID("id")
	byChannel = parse.JoinIDs("channel", "id")
)

// thermoHygro covers the many channel-switched thermo-hygrometers.
func thermoHygro(name string) parse.JSONFunc {
	return parse.NewJSON(name, parse.Metric, byChannel,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldBattery)
}

var Decoders = []parse.Decoder{
	{Name: CalibeurName, Identifier: "Calibeur RF-104", Text: parse.NewText(CalibeurName, parse.Metric, calibeurLabels, "id")},
	{Name: CalibeurName, Identifier: "Calibeur-RF104", JSON: parse.NewJSON(CalibeurName, parse.Metric, byID,
		parse.FieldTemperature, parse.FieldHumidity)},

	{Name: "NexusTemperaturePacket", Identifier: "Nexus-T", JSON: thermoHygro("NexusTemperaturePacket")},
	{Name: "ProloguePacket", Identifier: "Prologue-T", JSON: thermoHygro("ProloguePacket")},
	{Name: "TFATwinPlus303049Packet", Identifier: "TFA-TwinPlus", JSON: thermoHygro("TFATwinPlus303049Packet")},
	{Name: "AuriolHG02832Packet", Identifier: "Auriol-HG02832", JSON: thermoHygro("AuriolHG02832Packet")},
	{Name: "InFactoryPacket", Identifier: "inFactory-TH", JSON: thermoHygro("InFactoryPacket")},
	{Name: "AlectoV1TemperaturePacket", Identifier: "AlectoV1-Temperature", JSON: thermoHygro("AlectoV1TemperaturePacket")},
	{Name: "KedsumTHPacket", Identifier: "Kedsum-TH", JSON: thermoHygro("KedsumTHPacket")},
	{Name: "EurochronPacket", Identifier: "Eurochron-EFTH800", JSON: thermoHygro("EurochronPacket")},

	{Name: "RubicsonTempPacket", Identifier: "Rubicson-Temperature", JSON: parse.NewJSON("RubicsonTempPacket", parse.Metric, byChannel,
		parse.FieldTemperature, parse.FieldBattery)},
	{Name: "SpringfieldTMPacket", Identifier: "Springfield-Soil", JSON: parse.NewJSON("SpringfieldTMPacket", parse.Metric, byChannel,
		parse.FieldTemperature, parse.FieldMoisture, parse.FieldBattery)},
	{Name: "WT0124Packet", Identifier: "WT0124", JSON: parse.NewJSON("WT0124Packet", parse.Metric, byChannel,
		parse.FieldTemperature)},
	{Name: "SolightTE44Packet", Identifier: "Solight-TE44", JSON: parse.NewJSON("SolightTE44Packet", parse.Metric, byChannel,
		parse.FieldTemperature)},

	{Name: "TSFT002Packet", Identifier: "TS-FT002", JSON: parse.NewJSON("TSFT002Packet", parse.Metric, byID,
		fieldDepth, parse.FieldTemperature, parse.FieldBattery)},
	{Name: "ThermoProTP12Packet", Identifier: "Thermopro-TP12", JSON: parse.NewJSON("ThermoProTP12Packet", parse.Metric, byID,
		parse.Field{Name: "temperature", Extract: parse.TemperatureOf("temperature_1_C", "temperature_1_F")}, fieldProbe)},
	{Name: "NorgoNGE101Packet", Identifier: "Norgo-NGE101", JSON: parse.NewJSON("NorgoNGE101Packet", parse.Metric, byID,
		fieldPower, fieldEnergy)},
	{Name: "HolmanWS5029Packet", Identifier: "Holman-WS5029", JSON: parse.NewJSON("HolmanWS5029Packet", parse.Metric, byID,
		parse.FieldTemperature, parse.FieldHumidity, parse.FieldRainTotal, parse.FieldWindSpeed, parse.FieldWindDir, parse.FieldBattery)},

	{Name: "AlectoV1WindPacket", Identifier: "AlectoV1-Wind", JSON: parse.NewJSON("AlectoV1WindPacket", parse.MetricWX, byChannel,
		parse.FieldWindSpeed, parse.FieldWindGust, parse.FieldWindDir, parse.FieldBattery)},
	{Name: "AlectoV1RainPacket", Identifier: "AlectoV1-Rain", JSON: parse.NewJSON("AlectoV1RainPacket", parse.MetricWX, byChannel,
		parse.FieldRainTotal, parse.FieldBattery)},
}
