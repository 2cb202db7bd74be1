package jwt

import (
	"testing"

	"github.com/go-stride/stride/pkg/http"
)

func TestGenAndParseToken(t *testing.T) {
	secret := "unit-test-secret"

	aToken, rToken, err := GenToken("user-1", "Project_Manager", []byte(secret), 15, 60)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	if aToken == "" || rToken == "" {
		t.Fatal("expected non-empty token pair")
	}

	claims, err := ParseToken(aToken, secret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserId != "user-1" {
		t.Errorf("UserId = %q, want %q", claims.UserId, "user-1")
	}
	if claims.Role != "Project_Manager" {
		t.Errorf("Role = %q, want %q", claims.Role, "Project_Manager")
	}

	if _, err := ParseToken(aToken, "wrong-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
	if _, err := ParseToken("garbage", secret); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestRefreshToken(t *testing.T) {
	auth := &http.Auth{SecretKey: "unit-test-secret", AccessExpire: 15, RefreshExpire: 60}

	_, rToken, err := GenToken("user-2", "Team_Lead", []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}

	pair, err := RefreshToken(auth, "user-2", "Team_Lead", rToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	claims, err := ParseToken(pair["accessToken"], auth.SecretKey)
	if err != nil {
		t.Fatalf("ParseToken on refreshed access token: %v", err)
	}
	if claims.UserId != "user-2" || claims.Role != "Team_Lead" {
		t.Errorf("refreshed claims = %+v", claims)
	}

	if _, err := RefreshToken(auth, "user-2", "Team_Lead", "garbage"); err == nil {
		t.Error("expected error for malformed refresh token")
	}
}
