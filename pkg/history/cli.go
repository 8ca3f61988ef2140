package history

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/busfleet/busfleet/pkg/config"
	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "archiver",
		Usage: "Archives bus position events into the history collection",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the archive consumers",
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

					if err := StartConsumers(redis, db); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					<-signals

					<-redis.QueueConnection.StopAllConsuming()

					return nil
				},
			},
		},
	}
}
