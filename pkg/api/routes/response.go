package routes

import (
	"errors"

	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// StatusForError maps the domain error taxonomy onto HTTP status codes.
func StatusForError(err error) int {
	var validationError *fleet.ValidationError
	if errors.As(err, &validationError) {
		return fiber.StatusBadRequest
	}

	switch {
	case errors.Is(err, fleet.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, fleet.ErrRouteNotFound),
		errors.Is(err, fleet.ErrVehicleNotFound),
		errors.Is(err, fleet.ErrStopNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, fleet.ErrDriverExists),
		errors.Is(err, fleet.ErrActiveServiceExists):
		return fiber.StatusConflict
	case errors.Is(err, fleet.ErrDiscoveryTimeout),
		errors.Is(err, fleet.ErrDiscoveryUnavailable):
		return fiber.StatusBadGateway
	}

	return fiber.StatusInternalServerError
}

// Failure writes the uniform failure envelope. Internal errors are logged
// server-side and reported with a generic message only.
func Failure(c *fiber.Ctx, err error) error {
	status := StatusForError(err)

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		message = "Server error. Please try again later."
	}

	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
