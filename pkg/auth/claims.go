package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/sukkarlab/sweetshop-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	StaffID int64
	Email   string
	Role    enums.StaffRole
}

// AccessTokenClaims represents the typed JWT issued to staff accounts.
type AccessTokenClaims struct {
	StaffID int64           `json:"staff_id"`
	Email   string          `json:"email"`
	Role    enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}
