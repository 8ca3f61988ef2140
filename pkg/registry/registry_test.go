package registry

import (
	"errors"
	"testing"

	"github.com/busfleet/busfleet/pkg/fleet"
)

func TestStartServiceInputValidateExpress(t *testing.T) {
	driver := &fleet.Driver{RouteType: fleet.RouteTypeExpress, BusNumber: "AP28Z1234"}

	input := &StartServiceInput{SourceCity: "Hyderabad", DestinationCity: "Vijayawada"}
	if err := input.Validate(driver); err != nil {
		t.Errorf("Expected a complete express trip to validate, got %v", err)
	}

	input = &StartServiceInput{SourceCity: "Hyderabad"}
	if err := input.Validate(driver); err == nil {
		t.Error("Expected an express trip without a destination to be rejected")
	}
}

func TestStartServiceInputValidateCity(t *testing.T) {
	driver := &fleet.Driver{RouteType: fleet.RouteTypeCity, BusNumber: "AP28Z1234"}

	input := &StartServiceInput{RouteNumber: "222R"}
	if err := input.Validate(driver); err != nil {
		t.Errorf("Expected a city trip with a route number to validate, got %v", err)
	}

	input = &StartServiceInput{}
	if err := input.Validate(driver); err == nil {
		t.Error("Expected a city trip without a route number to be rejected")
	}
}

func TestStartServiceInputValidateBusNumberRequired(t *testing.T) {
	driver := &fleet.Driver{RouteType: fleet.RouteTypeCity}

	input := &StartServiceInput{RouteNumber: "222R"}
	err := input.Validate(driver)

	var validationError *fleet.ValidationError
	if !errors.As(err, &validationError) {
		t.Errorf("Expected a validation error when neither input nor driver has a bus number, got %v", err)
	}

	input.BusNumber = "AP28Z5678"
	if err := input.Validate(driver); err != nil {
		t.Errorf("Expected the input bus number to satisfy the requirement, got %v", err)
	}
}

func TestEffectiveRouteTypeResolvesBoth(t *testing.T) {
	driver := &fleet.Driver{RouteType: fleet.RouteTypeBoth}

	expressInput := &StartServiceInput{SourceCity: "Hyderabad", DestinationCity: "Warangal"}
	if got := effectiveRouteType(driver, expressInput); got != fleet.RouteTypeExpress {
		t.Errorf("Expected a declared intercity trip to resolve express, got %s", got)
	}

	cityInput := &StartServiceInput{RouteNumber: "10H"}
	if got := effectiveRouteType(driver, cityInput); got != fleet.RouteTypeCity {
		t.Errorf("Expected a route-number trip to resolve city, got %s", got)
	}
}

func TestEffectiveRouteTypeFixedCapability(t *testing.T) {
	driver := &fleet.Driver{RouteType: fleet.RouteTypeExpress}

	// A fixed capability never switches, whatever the trip declares.
	cityInput := &StartServiceInput{RouteNumber: "10H"}
	if got := effectiveRouteType(driver, cityInput); got != fleet.RouteTypeExpress {
		t.Errorf("Expected the driver capability to win, got %s", got)
	}
}
