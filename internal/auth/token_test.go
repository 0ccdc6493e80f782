package auth

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueSessionToken(secret, time.Now().UTC())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := ParseSessionToken(token, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Scope != ScopeAdmin {
		t.Fatalf("scope: got %q", claims.Scope)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := IssueSessionToken([]byte("right-secret"), time.Now().UTC())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseSessionToken(token, []byte("wrong-secret")); err == nil {
		t.Fatal("wrong secret must not validate")
	}
}

func TestSessionTokenExpiry(t *testing.T) {
	secret := []byte("test-secret")
	issued := time.Now().UTC().Add(-SessionTTL - time.Hour)
	token, err := IssueSessionToken(secret, issued)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseSessionToken(token, secret); err == nil {
		t.Fatal("expired token must not validate")
	}
}

func TestSessionTokenEmptyInputs(t *testing.T) {
	if _, err := IssueSessionToken(nil, time.Now()); err == nil {
		t.Fatal("empty secret must fail")
	}
	if _, err := ParseSessionToken("", []byte("secret")); err == nil {
		t.Fatal("empty token must fail")
	}
}
