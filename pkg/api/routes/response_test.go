package routes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/gofiber/fiber/v2"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err      error
		expected int
	}{
		{fleet.NewValidationError("busNumber is required"), fiber.StatusBadRequest},
		{fleet.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{fleet.ErrRouteNotFound, fiber.StatusNotFound},
		{fleet.ErrVehicleNotFound, fiber.StatusNotFound},
		{fleet.ErrStopNotFound, fiber.StatusNotFound},
		{fleet.ErrDriverExists, fiber.StatusConflict},
		{fleet.ErrActiveServiceExists, fiber.StatusConflict},
		{fleet.ErrDiscoveryTimeout, fiber.StatusBadGateway},
		{fleet.ErrDiscoveryUnavailable, fiber.StatusBadGateway},
		{errors.New("mongo: connection refused"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusForError(tc.err); got != tc.expected {
			t.Errorf("StatusForError(%v): expected %d, got %d", tc.err, tc.expected, got)
		}
	}
}

func TestStatusForWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("starting service: %w", fleet.ErrActiveServiceExists)

	if got := StatusForError(wrapped); got != fiber.StatusConflict {
		t.Errorf("Expected wrapped errors to keep their status, got %d", got)
	}
}
