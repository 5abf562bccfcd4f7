/*
RTLWX is a weather station driver for sensors decoded by rtl_433. It runs
rtl_433, reads its output, decodes each message into a packet of qualified
observations and emits the fields selected by a sensor map.

Observations are qualified as <observation>.<sensor_id>.<decoder>, for example:

	temperature.37FC.AcuriteTowerPacket

Sensor ids are printed the way rtl_433's JSON output prints them, so a sensor
keeps its keys when switching output formats. Decimal ids lose their leading
zeros, a WH1080 printing StationID: 0026 is station 26. Hex ids are upper
case with at least four digits, 0x2c87 becomes 2C87.

Both rtl_433's JSON output and the older delimited text output are read, the
default command is:

	rtl_433 -M utc -F json

Configuration:

	-config=rtlwx.yaml

A YAML file, flags given explicitly override its values:

	cmd: rtl_433 -M utc -F json
	timeout: 3s
	sensor_map:
	  outTemp: temperature.*.AcuriteTowerPacket
	  inTemp: temperature.37FC.AcuriteTowerPacket
	  rain_total: rain_total.0BFA.Acurite5n1Packet
	deltas:
	  rain: rain_total
	output:
	  format: plain
	nats:
	  url: nats://localhost:4222
	  subject: sdr.packets
	postgres:
	  conn_string: postgres://localhost/weather
	  table: sdr_packets
	http:
	  addr: :8433

Sensor map patterns are a qualified name, three dot separated glob patterns
or a bare observation name. Deltas derive the amount accumulated since the
previous reading of a cumulative field, rain and strikes by default. No delta
is produced across a counter reset.

Every flag may be given in the environment as SDR_<FLAG>, dashes replaced by
underscores, a .env file in the working directory is loaded first.

Command-line Flags:

	-action=run

One of run, show-packets, show-detected or list-supported. show-packets
echoes raw output as out:, decoded packets as parsed: and unrecognized
messages as unparsed:, the -filter flag hides any of out, parsed, unparsed
and empty. show-detected lists each sensor heard as .<sensor_id>.<decoder>.

	-duration=0

Sets time to run for, 0 for infinite.

	-format="plain"

Sets the packet output format, plain, json or csv. Plain text is formatted as:

	{dateTime:1472601440 usUnits:16 inTemp:26.7}

	-http=""

Serves /healthz, /latest, /sensors, /decoders and /metrics on this address.

	-nats="" -nats-subject="sdr.packets"

Publishes each packet as a JSON object.

	-postgres=""

Archives each packet as a row of (date_time, us_units, fields jsonb).

	-single=false

Provides one shot execution, exits after the first packet.
*/
package main
