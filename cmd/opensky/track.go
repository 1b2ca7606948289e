package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"plane.watch/opensky/lib/tracks"
)

func runTrack(c *cli.Context) error {
	icao24 := c.Args().First()
	if "" == icao24 {
		return errors.New("which aircraft? e.g. opensky track 3c6444")
	}

	request := newAPI(c).GetTracks(icao24)
	if c.IsSet("time") {
		request.AtTime(c.Uint64("time"))
	}

	result, err := request.Send()
	if nil != err {
		return err
	}

	if c.Bool("json") {
		out, err := tracks.EncodeCanonical(result)
		if nil != err {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"Time", "Lat", "Lon", "Baro Alt", "Track", "On Ground"})
	tbl.SetBorder(false)
	tbl.SetAutoWrapText(false)

	for i := range result.Path {
		wp := &result.Path[i]
		tbl.Append([]string{
			unixTimeStr(wp.Time),
			optFloatStr(wp.Latitude, 4),
			optFloatStr(wp.Longitude, 4),
			optFloatStr(wp.BaroAltitude, 0),
			optFloatStr(wp.TrueTrack, 1),
			fmt.Sprintf("%t", wp.OnGround),
		})
	}
	tbl.Render()
	fmt.Printf("%s %s: %d waypoints\n", result.Icao24, optStr(result.Callsign), len(result.Path))
	return nil
}
