package auth

import (
	"testing"
	"time"
)

func TestMintAndParse(t *testing.T) {
	m := NewJWTManager("prestabanco", "prestabanco-clients", "test-signing-key")

	tok, err := m.Mint("12345678-9", "sess-1", RoleExecutive, "access", time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Rut != "12345678-9" {
		t.Fatalf("rut = %q", claims.Rut)
	}
	if claims.SessionID != "sess-1" {
		t.Fatalf("session id = %q", claims.SessionID)
	}
	if claims.Role != RoleExecutive {
		t.Fatalf("role = %q", claims.Role)
	}
	if claims.Type != "access" {
		t.Fatalf("type = %q", claims.Type)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	minter := NewJWTManager("prestabanco", "prestabanco-clients", "key-one")
	parser := NewJWTManager("prestabanco", "prestabanco-clients", "key-two")

	tok, err := minter.Mint("12345678-9", "sess-1", RoleClient, "access", time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := parser.Parse(tok); err == nil {
		t.Fatalf("expected parse to fail with a different key")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	minter := NewJWTManager("someone-else", "prestabanco-clients", "shared-key")
	parser := NewJWTManager("prestabanco", "prestabanco-clients", "shared-key")

	tok, err := minter.Mint("12345678-9", "sess-1", RoleClient, "access", time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := parser.Parse(tok); err == nil {
		t.Fatalf("expected parse to fail for wrong issuer")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("prestabanco", "prestabanco-clients", "test-signing-key")

	tok, err := m.Mint("12345678-9", "sess-1", RoleClient, "access", -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := m.Parse(tok); err == nil {
		t.Fatalf("expected parse to fail for expired token")
	}
}

func TestRoleAssignment(t *testing.T) {
	svc := NewService(nil, nil, nil, []string{"11111111-1"}, time.Minute, time.Hour)

	if got := svc.Role("11111111-1"); got != RoleExecutive {
		t.Fatalf("configured rut role = %q, want executive", got)
	}
	if got := svc.Role("22222222-2"); got != RoleClient {
		t.Fatalf("unknown rut role = %q, want client", got)
	}
}
