package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// IncludeVerbosityFlags adds the shared --debug/--quiet flags to an app.
func IncludeVerbosityFlags(app *cli.App) {
	app.Flags = append(app.Flags,
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Show Extra Debug Information",
			EnvVars: []string{"DEBUG"},
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Usage:   "Only show important messages",
			EnvVars: []string{"QUIET"},
		},
	)
}

// SetLoggingLevel applies the verbosity flags to the global logger.
func SetLoggingLevel(c *cli.Context) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if c.Bool("quiet") {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
	if c.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// ConfigureForCli switches the global logger to human readable console
// output.
func ConfigureForCli() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Stamp,
	})
}
