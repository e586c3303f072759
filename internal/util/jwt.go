package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ferdian3456/virdanthread/internal/constant"
	"github.com/ferdian3456/virdanthread/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	BearerPrefix            = "Bearer "
	TokenIssuer             = "github.com/ferdian3456/virdanthread"
	AccessTokenDuration     = 15 * time.Minute
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrMissingSecretKey     = errors.New("jwt secret key is not configured")
)

func GenerateAccessToken(userId uuid.UUID, jwtSecretKey string, duration time.Duration) (string, error) {
	if jwtSecretKey == "" {
		return "", ErrMissingSecretKey
	}

	now := time.Now().UTC()
	claims := &model.CallerClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
			Subject:   fmt.Sprintf("user:%s", userId.String()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecretKey))
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// ValidateAccessToken resolves the caller identity from an Authorization header value.
func ValidateAccessToken(authHeader string, jwtSecretKey string) (uuid.UUID, error) {
	if jwtSecretKey == "" {
		return uuid.Nil, ErrMissingSecretKey
	}

	tokenString, err := extractBearerToken(authHeader)
	if err != nil {
		return uuid.Nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.CallerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(jwtSecretKey), nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return uuid.Nil, handleParseError(err)
	}

	claims, ok := token.Claims.(*model.CallerClaims)
	if !ok || !token.Valid || claims.UserId == uuid.Nil {
		return uuid.Nil, unauthorized("Authentication token is invalid")
	}

	return claims.UserId, nil
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", unauthorized("No authentication token is provided")
	}

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", unauthorized("Authentication token format is not match")
	}

	token := strings.TrimPrefix(authHeader, BearerPrefix)
	if token == "" {
		return "", unauthorized("Authentication token is empty")
	}

	return token, nil
}

func handleParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return unauthorized("Authentication token is malformed")
	case errors.Is(err, jwt.ErrTokenExpired):
		return unauthorized("Authentication token is expired")
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return unauthorized("Authentication token is not valid yet")
	case errors.Is(err, ErrInvalidSigningMethod):
		return unauthorized("Authentication token has invalid signing method")
	default:
		return unauthorized("Authentication token is invalid")
	}
}

func unauthorized(message string) error {
	return &model.UnauthorizedError{
		Code:    constant.ERR_UNATHORIZED_ERROR,
		Message: message,
		Param:   "accessToken",
	}
}
