package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// DeviceTokenClaims identifies one browser/device whose storefront state the
// server holds. The device id is carried as the JWT subject.
type DeviceTokenClaims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}
