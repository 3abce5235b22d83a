package auth

import (
	"testing"

	"lnzh/middleware"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := generateToken()
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	claims, err := middleware.ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q, want admin", claims.Role)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	for _, header := range []string{"", "Bearer ", "Bearer not.a.token", "nonsense"} {
		if _, err := middleware.ValidateJWT(header); err == nil {
			t.Errorf("ValidateJWT(%q) accepted", header)
		}
	}
}
