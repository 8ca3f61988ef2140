package routes

import (
	"bufio"
	"context"
	"fmt"

	"github.com/busfleet/busfleet/pkg/auth"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/busfleet/busfleet/pkg/history"
	"github.com/busfleet/busfleet/pkg/registry"
	"github.com/busfleet/busfleet/pkg/tracker"
	"github.com/busfleet/busfleet/pkg/transport"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BusRouter struct {
	Registry *registry.Registry
	Engine   *tracker.Engine
	Rooms    *transport.Rooms
	History  *history.Publisher

	Protected fiber.Handler
}

func (router *BusRouter) Register(group fiber.Router) {
	group.Post("/start", router.Protected, router.startService)
	group.Post("/stop", router.Protected, router.stopService)
	group.Get("/status", router.Protected, router.serviceStatus)
	group.Post("/location", router.Protected, router.updateLocation)

	group.Get("/active", router.activeBuses)
	group.Get("/search", router.searchBuses)

	group.Get("/live/:busId", router.streamLocation)

	// live/:routeNumber must be registered before :routeNumber.
	group.Get("/route/live/:routeNumber", router.liveRouteStatus)
	group.Get("/route/:routeNumber", router.routeStops)
}

func (router *BusRouter) startService(c *fiber.Ctx) error {
	var input registry.StartServiceInput
	if err := c.BodyParser(&input); err != nil {
		return Failure(c, fleet.NewValidationError("Request body could not be parsed"))
	}

	driver := auth.DriverFromContext(c)

	bus, err := router.Registry.StartService(c.Context(), driver, &input)
	if err != nil {
		return Failure(c, err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Bus service started successfully!",
		"bus":     bus,
	})
}

func (router *BusRouter) stopService(c *fiber.Ctx) error {
	driver := auth.DriverFromContext(c)

	bus, err := router.Registry.StopService(c.Context(), driver)
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Bus service stopped successfully!",
		"bus":     bus,
	})
}

func (router *BusRouter) serviceStatus(c *fiber.Ctx) error {
	driver := auth.DriverFromContext(c)

	bus, err := router.Registry.ActiveForDriver(c.Context(), driver.ID)
	if err != nil {
		return Failure(c, err)
	}

	if bus == nil {
		return c.JSON(fiber.Map{
			"success":  true,
			"isActive": false,
			"bus":      nil,
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"isActive": true,
		"bus":      bus,
	})
}

func (router *BusRouter) updateLocation(c *fiber.Ctx) error {
	var input registry.PositionUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return Failure(c, fleet.NewValidationError("Request body could not be parsed"))
	}

	bus, err := router.Registry.UpdatePosition(c.Context(), &input)
	if err != nil {
		return Failure(c, err)
	}

	// Best-effort broadcast; the registry already holds the durable state.
	router.Rooms.PublishLocation(c.Context(), bus)
	router.History.PublishPosition(bus)

	return c.JSON(fiber.Map{
		"success": true,
		"bus": fiber.Map{
			"id":          bus.ID.Hex(),
			"busNumber":   bus.BusNumber,
			"lastUpdated": bus.LastUpdated,
		},
	})
}

// streamLocation joins a vehicle's room and relays its location events to
// the passenger as server-sent events until the client disconnects.
func (router *BusRouter) streamLocation(c *fiber.Ctx) error {
	busID := c.Params("busId")
	if _, err := primitive.ObjectIDFromHex(busID); err != nil {
		return Failure(c, fleet.ErrVehicleNotFound)
	}

	pubsub := router.Rooms.Join(context.Background(), busID)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer router.Rooms.Leave(pubsub)

		for message := range pubsub.Channel() {
			fmt.Fprintf(w, "data: %s\n\n", message.Payload)
			if err := w.Flush(); err != nil {
				// Client went away.
				return
			}
		}
	}))

	return nil
}

func (router *BusRouter) activeBuses(c *fiber.Ctx) error {
	buses, err := router.Registry.ActiveBuses(c.Context())
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(buses),
		"buses":   buses,
	})
}

func (router *BusRouter) searchBuses(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")

	if from == "" && to == "" {
		return Failure(c, fleet.NewValidationError("At least one of from or to is required"))
	}

	buses, err := router.Registry.Search(c.Context(), from, to)
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(buses),
		"buses":   buses,
	})
}

func (router *BusRouter) routeStops(c *fiber.Ctx) error {
	route, stops, err := router.Engine.Catalog.GetRouteStops(c.Context(), c.Params("routeNumber"))
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"route":   route,
		"stops":   stops,
	})
}

func (router *BusRouter) liveRouteStatus(c *fiber.Ctx) error {
	liveStatus, err := router.Engine.GetLiveStatus(c.Context(), c.Params("routeNumber"))
	if err != nil {
		return Failure(c, err)
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, liveStatus)
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"route":       reduced.(map[string]interface{})["route"],
		"stops":       reduced.(map[string]interface{})["stops"],
		"activeBuses": reduced.(map[string]interface{})["activeBuses"],
		"count":       liveStatus.Count,
		"queueCount":  liveStatus.QueueCount,
	})
}
