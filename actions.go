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

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/driver"
	"github.com/bemasher/rtlwx/parse"
	"github.com/bemasher/rtlwx/sink"
)

// Run sends every emitted packet to s. With single set it returns after the
// first one.
func Run(ctx context.Context, d *driver.Driver, s sink.Sink, single bool) error {
	for {
		pkt, err := d.Next(ctx)
		if err != nil {
			return err
		}

		// Failing sinks are logged and counted by sink.Multi.
		if err := s.Send(ctx, pkt); err != nil {
			log.Debugf("send: %s", err)
		}

		if single {
			return nil
		}
	}
}

// ShowPackets echoes raw groups and what they decode to, for identifying
// sensors.
func ShowPackets(ctx context.Context, d *driver.Driver, w io.Writer, hide HideSet, single bool) error {
	for {
		lines, err := d.NextGroup(ctx)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			if !hide["empty"] {
				fmt.Fprintln(w, "empty")
			}
			continue
		}

		if !hide["out"] {
			for _, line := range lines {
				fmt.Fprintln(w, "out:", line)
			}
		}

		pkt := d.Decode(lines)
		if pkt == nil {
			if !hide["unparsed"] {
				fmt.Fprintf(w, "unparsed: %q\n", lines)
			}
			continue
		}

		if !hide["parsed"] {
			fmt.Fprintln(w, "parsed:", pkt)
		}
		if single {
			return nil
		}
	}
}

// ShowDetected reports each sensor the first time it is decoded, and the
// tally of everything seen when the stream ends.
func ShowDetected(ctx context.Context, d *driver.Driver, w io.Writer) error {
	seen := make(map[string]bool)
	defer PrintDetected(w, d.Detected)

	for {
		lines, err := d.NextGroup(ctx)
		if err != nil {
			return err
		}

		pkt := d.Decode(lines)
		if pkt == nil || seen[pkt.Label()] {
			continue
		}
		seen[pkt.Label()] = true

		fmt.Fprintf(w, "detected: %s %v\n", pkt.Label(), pkt.Keys())
	}
}

func PrintDetected(w io.Writer, detected func() []driver.Detection) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "SENSOR\tPACKETS")
	for _, det := range detected() {
		fmt.Fprintf(tw, "%s\t%d\n", det.Label, det.Count)
	}
	tw.Flush()
}

// ListSupported prints the registry in match order.
func ListSupported(w io.Writer, r *parse.Registry) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "IDENTIFIER\tDECODER\tTEXT\tJSON")
	for _, d := range r.Decoders() {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%t\n", d.Identifier, d.Name, d.Text != nil, d.JSON != nil)
	}
	tw.Flush()
}
