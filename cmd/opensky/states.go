package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"plane.watch/opensky/lib/api"
	"plane.watch/opensky/lib/states"
)

func buildStatesRequest(c *cli.Context) (*api.StateRequestBuilder, error) {
	request := newAPI(c).GetStates()
	if c.IsSet("time") {
		request.AtTime(c.Uint64("time"))
	}
	for _, address := range c.StringSlice("icao24") {
		request.WithIcao24(address)
	}
	if c.IsSet("bbox") {
		bbox, err := parseBBox(c.String("bbox"))
		if nil != err {
			return nil, err
		}
		request.WithBBox(bbox)
	}
	for _, serial := range c.Int64Slice("serial") {
		request.WithSerial(uint64(serial))
	}
	return request, nil
}

func runStates(c *cli.Context) error {
	request, err := buildStatesRequest(c)
	if nil != err {
		return err
	}
	result, err := request.Send()
	if nil != err {
		return err
	}
	logAnomalies(result)

	if c.Bool("json") {
		out, err := states.EncodeCanonical(result)
		if nil != err {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	renderStates(result)
	return nil
}

func renderStates(result *states.States) {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"ICAO24", "Callsign", "Country", "Lat", "Lon", "Baro Alt", "Velocity", "Track", "Source", "Category"})
	tbl.SetBorder(false)
	tbl.SetAutoWrapText(false)

	for i := range result.States {
		sv := &result.States[i]
		category := "-"
		if nil != sv.Category {
			category = sv.Category.String()
		}
		tbl.Append([]string{
			sv.Icao24,
			optStr(sv.Callsign),
			sv.OriginCountry,
			optFloatStr(sv.Latitude, 4),
			optFloatStr(sv.Longitude, 4),
			optFloatStr(sv.BaroAltitude, 0),
			optFloatStr(sv.Velocity, 1),
			optFloatStr(sv.TrueTrack, 1),
			sv.PositionSource.String(),
			category,
		})
	}
	tbl.Render()
	fmt.Printf("%d aircraft at %s\n", len(result.States), unixTimeStr(result.Time))
}

func logAnomalies(result *states.States) {
	if result.Fallback {
		log.Warn().
			Str("form", string(result.Form)).
			Msg("Response only decoded via the fallback schema variant")
	}
	for _, anomaly := range result.Anomalies {
		log.Debug().
			Str("field", anomaly.Field).
			Str("reason", anomaly.Reason).
			Msg("Decode anomaly")
	}
}

func unixTimeStr(t uint64) string {
	return time.Unix(int64(t), 0).UTC().Format(time.RFC3339)
}
