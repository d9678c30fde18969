package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func TestGenerateTokenIsHexAndUnique(t *testing.T) {
	a, err := GenerateToken(32)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	b, _ := GenerateToken(32)
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatal("expected two different tokens")
	}
}

func TestIssueSessionTokenCarriesRoleAndMember(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TOKEN_TTL", "1h")
	id := uuid.New()
	now := time.Now()

	signed, err := IssueSessionToken(id, "member", now)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != id.String() || claims["role"] != "member" {
		t.Fatalf("unexpected claims %v", claims)
	}
	exp := int64(claims["exp"].(float64))
	if exp != now.Add(time.Hour).Unix() {
		t.Fatalf("expected expiry one hour out, got %d", exp)
	}
}
