package api

import (
	"github.com/busfleet/busfleet/pkg/config"
	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/elastic_client"
	"github.com/busfleet/busfleet/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":3000",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					db, err := database.Connect(cfg)
					if err != nil {
						return err
					}

					redis, err := redis_client.Connect(cfg)
					if err != nil {
						return err
					}

					elastic, err := elastic_client.Connect(cfg, false)
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), cfg, db, redis, elastic)
				},
			},
		},
	}
}
