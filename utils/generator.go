package utils

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateToken returns n random bytes hex encoded.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IssueSessionToken signs the JWT the member and admin routes accept.
func IssueSessionToken(memberID uuid.UUID, role string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": memberID.String(),
		"role":    role,
		"exp":     now.Add(config.Duration("SESSION_TOKEN_TTL", 72*time.Hour)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}
