package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"plane.watch/opensky/lib/flights"
)

func runFlights(c *cli.Context) error {
	begin, end := c.Uint64("begin"), c.Uint64("end")
	if !c.IsSet("begin") && !c.IsSet("end") {
		// default to the last two hours, the widest unfiltered interval
		now := uint64(time.Now().Unix())
		begin, end = now-2*60*60, now
	}

	request := newAPI(c).GetFlights(begin, end)
	switch {
	case c.IsSet("aircraft"):
		request.ByAircraft(c.String("aircraft"))
	case c.IsSet("arrival"):
		request.ByArrival(c.String("arrival"))
	case c.IsSet("departure"):
		request.ByDeparture(c.String("departure"))
	}

	result, err := request.Send()
	if nil != err {
		return err
	}

	if c.Bool("json") {
		out, err := flights.EncodeCanonical(result)
		if nil != err {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"ICAO24", "Callsign", "First Seen", "Departure", "Last Seen", "Arrival"})
	tbl.SetBorder(false)
	tbl.SetAutoWrapText(false)

	for i := range result {
		fl := &result[i]
		tbl.Append([]string{
			fl.Icao24,
			optStr(fl.Callsign),
			unixTimeStr(fl.FirstSeen),
			optStr(fl.EstDepartureAirport),
			unixTimeStr(fl.LastSeen),
			optStr(fl.EstArrivalAirport),
		})
	}
	tbl.Render()
	fmt.Printf("%d flights\n", len(result))
	return nil
}
