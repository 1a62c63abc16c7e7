package auth

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateJWT("user-42", RoleAdmin, secret)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(token, secret)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("expected user-42, got %s", claims.UserID)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", claims.Role)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-42", RoleUser, "secret-a")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	if _, err := ValidateJWT(token, "secret-b"); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestValidateJWTEmpty(t *testing.T) {
	if _, err := ValidateJWT("", "secret"); err == nil {
		t.Fatal("empty token must not validate")
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken("Bearer abc.def.ghi"); got != "abc.def.ghi" {
		t.Errorf("unexpected token %q", got)
	}
	if got := BearerToken("abc.def.ghi"); got != "abc.def.ghi" {
		t.Errorf("unexpected token %q", got)
	}
}
