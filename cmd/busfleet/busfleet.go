package main

import (
	"os"
	"time"

	"github.com/busfleet/busfleet/pkg/api"
	"github.com/busfleet/busfleet/pkg/dataimporter"
	"github.com/busfleet/busfleet/pkg/history"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("BUSFLEET_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("BUSFLEET_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "busfleet",
		Description: "Single binary of truth for busfleet - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			history.RegisterCLI(),
			dataimporter.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
