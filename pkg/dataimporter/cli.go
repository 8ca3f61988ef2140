package dataimporter

import (
	"context"

	"github.com/busfleet/busfleet/pkg/catalog"
	"github.com/busfleet/busfleet/pkg/config"
	"github.com/busfleet/busfleet/pkg/database"
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Seeds stops and routes into the catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "stops",
				Usage: "import stops from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path to the stops CSV file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					importer, err := connect()
					if err != nil {
						return err
					}

					return importer.ImportStops(context.Background(), c.String("file"))
				},
			},
			{
				Name:  "routes",
				Usage: "import routes from a YAML file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path to the routes YAML file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					importer, err := connect()
					if err != nil {
						return err
					}

					return importer.ImportRoutes(context.Background(), c.String("file"))
				},
			},
			{
				Name:  "inspect",
				Usage: "dump the resolved stop sequence for a route",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "route",
						Usage:    "route number to resolve",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					importer, err := connect()
					if err != nil {
						return err
					}

					routeCatalog := catalog.NewCatalog(importer.DB)
					route, stops, err := routeCatalog.GetRouteStops(context.Background(), c.String("route"))
					if err != nil {
						return err
					}

					pretty.Println(route)
					pretty.Println(stops)

					return nil
				},
			},
		},
	}
}

func connect() (*Importer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	return &Importer{DB: db}, nil
}
