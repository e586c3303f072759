package model

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CallerClaims carries the identity the auth collaborator vouches for.
type CallerClaims struct {
	UserId uuid.UUID `json:"userId"`
	jwt.RegisteredClaims
}
