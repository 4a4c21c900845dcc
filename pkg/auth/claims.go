package auth

import (
	"github.com/glassph/glass-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Email string
	Role  enums.ActorRole
	JTI   string
}

// AccessTokenClaims represents the typed JWT issued to clients. Orders and
// addresses are keyed by email, so the email claim is the identity the rest
// of the platform works with.
type AccessTokenClaims struct {
	Email string          `json:"email"`
	Role  enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
