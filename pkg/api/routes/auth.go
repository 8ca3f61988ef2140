package routes

import (
	"github.com/busfleet/busfleet/pkg/auth"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/gofiber/fiber/v2"
)

type AuthRouter struct {
	Service *auth.Service
}

func (router *AuthRouter) Register(group fiber.Router) {
	group.Post("/register", router.register)
	group.Post("/login", router.login)
}

func (router *AuthRouter) register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return Failure(c, fleet.NewValidationError("Request body could not be parsed"))
	}

	driver, err := router.Service.Register(c.Context(), &input)
	if err != nil {
		return Failure(c, err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registration successful! You can now login.",
		"driver": fiber.Map{
			"id":            driver.ID.Hex(),
			"name":          driver.Name,
			"email":         driver.Email,
			"phone":         driver.Phone,
			"licenseNumber": driver.LicenseNumber,
			"routeType":     driver.RouteType,
		},
	})
}

func (router *AuthRouter) login(c *fiber.Ctx) error {
	var input auth.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return Failure(c, fleet.NewValidationError("Request body could not be parsed"))
	}

	driver, token, err := router.Service.Login(c.Context(), &input)
	if err != nil {
		return Failure(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"driver": fiber.Map{
			"id":        driver.ID.Hex(),
			"name":      driver.Name,
			"email":     driver.Email,
			"routeType": driver.RouteType,
			"homeCity":  driver.HomeCity,
		},
	})
}
