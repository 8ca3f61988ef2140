package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and validates the opaque bearer tokens handed to drivers
// at login. Tokens are HS256 signed with a local secret; the subject claim
// carries the driver identifier.
type TokenIssuer struct {
	Secret []byte
	Expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		Secret: []byte(secret),
		Expiry: expiry,
	}
}

func (issuer *TokenIssuer) Mint(driverID string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   driverID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(issuer.Expiry)),
	})

	return token.SignedString(issuer.Secret)
}

// Validate checks the token signature and expiry and returns the driver
// identifier it was minted for.
func (issuer *TokenIssuer) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return issuer.Secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token missing subject")
	}

	return claims.Subject, nil
}
