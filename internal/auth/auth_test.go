package auth

import (
	"errors"
	"strings"
	"testing"
)

func testSessions() *Sessions {
	return NewSessions("test-secret", "ti-pass", "jefes-pass")
}

func TestLoginRoleMapping(t *testing.T) {
	s := testSessions()

	role, err := s.Login("ti-pass")
	if err != nil || role != RoleTI {
		t.Fatalf("ti password: got (%q, %v)", role, err)
	}
	role, err = s.Login("jefes-pass")
	if err != nil || role != RoleJefes {
		t.Fatalf("jefes password: got (%q, %v)", role, err)
	}
	if _, err := s.Login("wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password: expected ErrBadCredentials, got %v", err)
	}
	if _, err := s.Login(""); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("empty password: expected ErrBadCredentials, got %v", err)
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	s := testSessions()
	for _, role := range []string{RoleTI, RoleJefes} {
		token, err := s.Issue(role)
		if err != nil {
			t.Fatalf("Issue(%s): %v", role, err)
		}
		got, err := s.Verify(token)
		if err != nil {
			t.Fatalf("Verify(%s): %v", role, err)
		}
		if got != role {
			t.Fatalf("round trip changed role: %q -> %q", role, got)
		}
	}
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	if _, err := testSessions().Issue("admin"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	s := testSessions()
	token, err := s.Issue(RoleTI)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]
	if _, err := s.Verify(tampered); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for tampered token, got %v", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, err := NewSessions("other-secret", "a", "b").Issue(RoleTI)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := testSessions().Verify(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for foreign secret, got %v", err)
	}
}

func TestVerifyRejectsBareRole(t *testing.T) {
	// The old revision stored the raw role name in the cookie; that must not
	// verify as a session anymore.
	if _, err := testSessions().Verify("ti"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for bare role value, got %v", err)
	}
}

func TestConfigured(t *testing.T) {
	if !testSessions().Configured() {
		t.Fatal("expected configured sessions")
	}
	if NewSessions("", "a", "b").Configured() {
		t.Fatal("missing secret must report unconfigured")
	}
	if NewSessions("s", "", "b").Configured() {
		t.Fatal("missing password must report unconfigured")
	}
}
