package routes

import (
	"strconv"

	"github.com/busfleet/busfleet/pkg/discovery"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/busfleet/busfleet/pkg/stops"
	"github.com/gofiber/fiber/v2"
)

type StopsRouter struct {
	Directory *stops.Directory
	Discovery *discovery.Adapter
}

func (router *StopsRouter) Register(group fiber.Router) {
	group.Get("/search", router.searchStops)
	group.Get("/near", router.nearbyStops)
	group.Get("/realtime", router.discoverStops)
}

func (router *StopsRouter) searchStops(c *fiber.Ctx) error {
	query := c.Query("query")
	city := c.Query("city")

	if query == "" && city == "" {
		return Failure(c, fleet.NewValidationError("A query or city filter must be applied"))
	}

	matched, err := router.Directory.Search(c.Context(), query, city)
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(matched),
		"stops":   matched,
	})
}

func parseCoordinates(c *fiber.Ctx) (float64, float64, float64, error) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		return 0, 0, 0, fleet.NewValidationError("lat and lng must be valid numbers")
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, 0, fleet.NewValidationError("Coordinates are out of range")
	}

	radius, _ := strconv.ParseFloat(c.Query("radius"), 64)

	return lat, lng, radius, nil
}

func (router *StopsRouter) nearbyStops(c *fiber.Ctx) error {
	lat, lng, radius, err := parseCoordinates(c)
	if err != nil {
		return Failure(c, err)
	}

	matched, err := router.Directory.Near(c.Context(), lat, lng, radius)
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(matched),
		"stops":   matched,
	})
}

func (router *StopsRouter) discoverStops(c *fiber.Ctx) error {
	lat, lng, radius, err := parseCoordinates(c)
	if err != nil {
		return Failure(c, err)
	}

	discovered, err := router.Discovery.FindStopsNear(c.Context(), lat, lng, radius)
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(discovered),
		"stops":   discovered,
	})
}
