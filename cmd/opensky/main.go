package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"plane.watch/opensky/lib/api"
	"plane.watch/opensky/lib/logging"
)

var version = "dev"

func main() {
	app := cli.NewApp()

	app.Version = version
	app.Name = "opensky"
	app.Usage = "Query the OpenSky Network API"

	app.Description = `Fetches live state vectors, historical flights and flight tracks from ` +
		`https://opensky-network.org/ and shows them as a table or as canonical JSON.` +
		"\n\n" +
		`example: opensky states --bbox=45.8389,47.8229,5.9962,10.5226` +
		"\n" +
		`example: OPENSKY_USER=me OPENSKY_PASS=secret opensky flights --aircraft=8990ed`

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "user",
			Usage:   "OpenSky account user name, anonymous access if unset",
			EnvVars: []string{"OPENSKY_USER"},
		},
		&cli.StringFlag{
			Name:    "pass",
			Usage:   "OpenSky account password",
			EnvVars: []string{"OPENSKY_PASS"},
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output canonical JSON instead of a table",
		},
	}
	logging.IncludeVerbosityFlags(app)

	app.Commands = []*cli.Command{
		{
			Name:   "states",
			Usage:  "Fetch the current (or a pinned) state vector snapshot",
			Action: runStates,
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:  "time",
					Usage: "Snapshot time as a unix timestamp, now if unset",
				},
				&cli.StringSliceFlag{
					Name:  "icao24",
					Usage: "Transponder address to filter on. e.g. --icao24=3c6444 --icao24=8990ed",
				},
				&cli.StringFlag{
					Name:  "bbox",
					Usage: "Bounding box as latMin,latMax,lonMin,lonMax in decimal degrees",
				},
				&cli.Int64SliceFlag{
					Name:  "serial",
					Usage: "Serial of a receiver you own, switches to /states/own",
				},
			},
		},
		{
			Name:   "flights",
			Usage:  "Fetch flights for a time interval",
			Action: runFlights,
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:  "begin",
					Usage: "Interval start as a unix timestamp",
				},
				&cli.Uint64Flag{
					Name:  "end",
					Usage: "Interval end as a unix timestamp",
				},
				&cli.StringFlag{
					Name:  "aircraft",
					Usage: "Transponder address to filter on",
				},
				&cli.StringFlag{
					Name:  "arrival",
					Usage: "Arrival airport ICAO code to filter on",
				},
				&cli.StringFlag{
					Name:  "departure",
					Usage: "Departure airport ICAO code to filter on",
				},
			},
		},
		{
			Name:      "track",
			Usage:     "Fetch the trajectory of one aircraft",
			Action:    runTrack,
			ArgsUsage: "<icao24>",
			Flags: []cli.Flag{
				&cli.Uint64Flag{
					Name:  "time",
					Usage: "A unix timestamp during the flight of interest, live track if unset",
				},
			},
		},
		{
			Name:   "watch",
			Usage:  "Poll the states endpoint, exposing metrics and optionally snapshotting to redis",
			Action: runWatch,
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:  "interval",
					Usage: "Time between polls",
					Value: defaultWatchInterval,
				},
				&cli.StringFlag{
					Name:  "bbox",
					Usage: "Bounding box as latMin,latMax,lonMin,lonMax in decimal degrees",
				},
				&cli.StringFlag{
					Name:  "redis",
					Usage: "Redis URL to store canonical snapshots in. e.g. redis://localhost:6379/0",
				},
				&cli.IntFlag{
					Name:  "monitor-port",
					Usage: "Port to serve prometheus metrics on, disabled if 0",
					Value: 9603,
				},
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		logging.ConfigureForCli()
		logging.SetLoggingLevel(c)
		return nil
	}

	if err := app.Run(os.Args); nil != err {
		log.Error().Err(err).Msg("Finishing with an error")
		os.Exit(1)
	}
}

func newAPI(c *cli.Context) *api.API {
	var opts []api.Option
	if user := c.String("user"); "" != user {
		opts = append(opts, api.WithLogin(user, c.String("pass")))
	}
	return api.New(opts...)
}

func parseBBox(arg string) (api.BoundingBox, error) {
	parts := strings.Split(arg, ",")
	if 4 != len(parts) {
		return api.BoundingBox{}, fmt.Errorf("bbox needs latMin,latMax,lonMin,lonMax, got %q", arg)
	}
	coords := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if nil != err {
			return api.BoundingBox{}, fmt.Errorf("bbox coordinate %q: %w", part, err)
		}
		coords[i] = v
	}
	return api.NewBoundingBox(coords[0], coords[1], coords[2], coords[3]), nil
}

// table cell helpers, a dash marks an absent value

func optStr(v *string) string {
	if nil == v {
		return "-"
	}
	return *v
}

func optFloatStr(v *float64, digits int) string {
	if nil == v {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', digits, 64)
}
