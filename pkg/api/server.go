package api

import (
	"github.com/busfleet/busfleet/pkg/api/routes"
	"github.com/busfleet/busfleet/pkg/auth"
	"github.com/busfleet/busfleet/pkg/catalog"
	"github.com/busfleet/busfleet/pkg/config"
	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/discovery"
	"github.com/busfleet/busfleet/pkg/elastic_client"
	"github.com/busfleet/busfleet/pkg/history"
	"github.com/busfleet/busfleet/pkg/redis_client"
	"github.com/busfleet/busfleet/pkg/registry"
	"github.com/busfleet/busfleet/pkg/tracker"
	"github.com/busfleet/busfleet/pkg/transport"
	"github.com/gofiber/fiber/v2"
)

func SetupServer(listen string, cfg *config.Config, db *database.Instance, redis *redis_client.Instance, elastic *elastic_client.Client) error {
	issuer := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenExpiry)

	authService := &auth.Service{DB: db, Issuer: issuer}

	routeCatalog := catalog.NewCatalog(db)
	busRegistry := &registry.Registry{
		DB:      db,
		Catalog: routeCatalog,
		Events:  &history.ElasticServiceEvents{Elastic: elastic},
	}
	progressEngine := &tracker.Engine{
		Catalog:  routeCatalog,
		Registry: busRegistry,
	}

	historyPublisher, err := history.NewPublisher(redis.QueueConnection)
	if err != nil {
		return err
	}

	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/api")

	group.Get("/version", routes.APIVersion)

	authRouter := &routes.AuthRouter{Service: authService}
	authRouter.Register(group.Group("/auth"))

	busGroup := group.Group("/bus")

	stopsRouter := &routes.StopsRouter{
		Directory: routeCatalog.Directory,
		Discovery: discovery.NewAdapter(cfg.OverpassMirrors, discovery.NewResultCache(redis.Client)),
	}
	stopsRouter.Register(busGroup.Group("/stops"))

	busRouter := &routes.BusRouter{
		Registry:  busRegistry,
		Engine:    progressEngine,
		Rooms:     &transport.Rooms{Client: redis.Client},
		History:   historyPublisher,
		Protected: auth.EnsureValidToken(issuer, db),
	}
	busRouter.Register(busGroup)

	return webApp.Listen(listen)
}
