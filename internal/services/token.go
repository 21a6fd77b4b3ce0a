package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"hiring-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims extends the registered JWT claims with the caller's role so
// the middleware can enforce role guards without a user lookup.
type AccessClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

func newAccessToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// newRefreshToken returns an opaque random token; validity lives in redis.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
