package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/busfleet/busfleet/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Service struct {
	DB     *database.Instance
	Issuer *TokenIssuer
}

type RegisterInput struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Password        string   `json:"password"`
	LicenseNumber   string   `json:"licenseNumber"`
	RouteType       string   `json:"routeType"`
	HomeCity        string   `json:"homeCity"`
	OperatingCities []string `json:"operatingCities"`
	BusNumber       string   `json:"busNumber"`
}

func (input *RegisterInput) Validate() error {
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Password == "" || input.LicenseNumber == "" {
		return fleet.NewValidationError("Please provide all required fields")
	}

	if input.RouteType != "" && !util.ContainsString([]string{fleet.RouteTypeCity, fleet.RouteTypeExpress, fleet.RouteTypeBoth}, input.RouteType) {
		return fleet.NewValidationError("Route type must be one of city, express or both")
	}

	return nil
}

func (service *Service) Register(ctx context.Context, input *RegisterInput) (*fleet.Driver, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	licenseNumber := strings.ToUpper(strings.TrimSpace(input.LicenseNumber))

	driversCollection := service.DB.GetCollection("drivers")

	var existing fleet.Driver
	err := driversCollection.FindOne(ctx, bson.M{
		"$or": bson.A{
			bson.M{"email": input.Email},
			bson.M{"licensenumber": licenseNumber},
		},
	}).Decode(&existing)

	if err == nil {
		return nil, fleet.ErrDriverExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	routeType := input.RouteType
	if routeType == "" {
		routeType = fleet.RouteTypeCity
	}

	driver := &fleet.Driver{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Password:         passwordHash,
		LicenseNumber:    licenseNumber,
		RouteType:        routeType,
		HomeCity:         input.HomeCity,
		OperatingCities:  input.OperatingCities,
		BusNumber:        strings.ToUpper(input.BusNumber),
		CreationDateTime: time.Now(),
	}

	insertResult, err := driversCollection.InsertOne(ctx, driver)
	if err != nil {
		return nil, err
	}

	driversCollection.FindOne(ctx, bson.M{"_id": insertResult.InsertedID}).Decode(&driver)

	return driver, nil
}

type LoginInput struct {
	Email         string `json:"email"`
	LicenseNumber string `json:"licenseNumber"`
	Password      string `json:"password"`
}

func (input *LoginInput) Validate() error {
	if input.Email == "" && input.LicenseNumber == "" {
		return fleet.NewValidationError("Email or license number is required")
	}
	if input.Password == "" {
		return fleet.NewValidationError("Password is required")
	}

	return nil
}

// Login verifies the credentials and mints a bearer token for the driver.
func (service *Service) Login(ctx context.Context, input *LoginInput) (*fleet.Driver, string, error) {
	if err := input.Validate(); err != nil {
		return nil, "", err
	}

	filter := bson.M{"email": input.Email}
	if input.Email == "" {
		filter = bson.M{"licensenumber": strings.ToUpper(strings.TrimSpace(input.LicenseNumber))}
	}

	var driver fleet.Driver
	driversCollection := service.DB.GetCollection("drivers")
	err := driversCollection.FindOne(ctx, filter).Decode(&driver)

	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", err
	}
	if errors.Is(err, mongo.ErrNoDocuments) || !CheckPassword(driver.Password, input.Password) {
		return nil, "", fleet.ErrInvalidCredentials
	}

	token, err := service.Issuer.Mint(driver.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return &driver, token, nil
}
