// Package auth mints and checks the HS256 operator tokens that guard
// account provisioning.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the operator the token was
// issued to.
type Claims struct {
	jwt.RegisteredClaims
	Operator string `json:"operator"`
}

func GenerateToken(operator string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Operator: operator,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetOperatorFromToken validates tokenString and returns its operator.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// validation common.ErrInvalidToken.
//
// A positive maxLifetime caps exp - iat: tokens minted for longer, or
// without iat, are rejected. Zero disables the cap.
func GetOperatorFromToken(tokenString string, secretKey []byte, maxLifetime time.Duration) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Operator == "" {
		return "", common.ErrInvalidToken
	}

	if maxLifetime > 0 {
		if claims.IssuedAt == nil {
			return "", fmt.Errorf("%w: iat is required", common.ErrInvalidToken)
		}
		if lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time); lifetime > maxLifetime {
			return "", fmt.Errorf("%w: lifetime %s exceeds %s", common.ErrInvalidToken, lifetime, maxLifetime)
		}
	}

	return claims.Operator, nil
}
