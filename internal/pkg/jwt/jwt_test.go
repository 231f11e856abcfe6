package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("secret", 15*time.Minute, 24*time.Hour)
	userID, profileID, orgID := uuid.New(), uuid.New(), uuid.New()

	token, err := svc.GenerateAccessToken(userID, profileID, orgID, "admin")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != userID || claims.ProfileID != profileID || claims.OrganizationID != orgID || claims.Role != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestAccessTokenRejectsRefreshToken(t *testing.T) {
	svc := NewService("secret", 15*time.Minute, 24*time.Hour)
	token, _, _, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("refresh token must not validate as access, got %v", err)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	svc := NewService("secret", -time.Minute, 24*time.Hour)
	token, err := svc.GenerateAccessToken(uuid.New(), uuid.New(), uuid.New(), "staff")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Minute, time.Hour).
		GenerateAccessToken(uuid.New(), uuid.New(), uuid.New(), "staff")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewService("secret-b", time.Minute, time.Hour).ValidateAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestOpaqueTokensAreUnique(t *testing.T) {
	a, err := GenerateOpaqueToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateOpaqueToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == b || len(a) != 64 {
		t.Fatalf("unexpected tokens: %s %s", a, b)
	}
}
