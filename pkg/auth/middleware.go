package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureValidToken is a middleware that checks the bearer token and loads
// the authenticated driver into the request locals.
func EnsureValidToken(issuer *TokenIssuer, db *database.Instance) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		authHeader := c.Get("Authorization")

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"success": false,
				"message": "Authorization header is required",
			})
		}

		driverID, tokenErr := issuer.Validate(authHeader[7:])
		if tokenErr != nil {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"success": false,
				"message": "Invalid auth token",
			})
		}

		objectID, idErr := primitive.ObjectIDFromHex(driverID)
		if idErr != nil {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"success": false,
				"message": "Invalid auth token",
			})
		}

		var driver fleet.Driver
		driversCollection := db.GetCollection("drivers")
		lookupErr := driversCollection.FindOne(context.Background(), bson.M{"_id": objectID}).Decode(&driver)

		if errors.Is(lookupErr, mongo.ErrNoDocuments) {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"success": false,
				"message": "Driver no longer exists",
			})
		}
		if lookupErr != nil {
			log.Error().Err(lookupErr).Msg("Failed to load driver for token")
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"success": false,
				"message": "Server error. Please try again later.",
			})
		}

		c.Locals("driver", &driver)

		return c.Next()
	}
}

// DriverFromContext returns the driver loaded by EnsureValidToken.
func DriverFromContext(c *fiber.Ctx) *fleet.Driver {
	driver, _ := c.Locals("driver").(*fleet.Driver)
	return driver
}
