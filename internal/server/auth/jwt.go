// Package auth issues and verifies the bearer tokens presented on protected
// routes. Tokens are HS256-signed and carry a single custom claim, the user ID.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/swivl/traveldiary/internal/common"
)

// Claims embeds the registered claim set plus the owning user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64
}

// GenerateToken produces a signed token embedding userID. No expiration claim
// is set: issued tokens stay valid for the lifetime of the signing secret.
func GenerateToken(userID int64, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: userID})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken validates the signature against secretKey and returns the
// embedded user ID. Any parse or signature failure maps to ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
