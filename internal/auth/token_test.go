package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, secret string, claims StaffClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestVerifyStaffToken_RoundTrip(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	tok := signed(t, secret, StaffClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "staff-42",
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		},
		Role:         "front_desk_agent",
		Capabilities: []string{CapFrontDesk, CapFinanceManage},
	})

	s, err := VerifyStaffToken(tok, secret, now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if s.StaffID != "staff-42" || s.Role != "front_desk_agent" {
		t.Fatalf("unexpected session %+v", s)
	}
	if !s.Can(CapFinanceManage) || s.Can(CapManagerApprove) {
		t.Fatalf("capability check wrong: %+v", s.Capabilities)
	}
}

func TestVerifyStaffToken_Expired(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	tok := signed(t, secret, StaffClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "staff-42",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	})

	if _, err := VerifyStaffToken(tok, secret, now); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerifyStaffToken_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tok := signed(t, "secret_a", StaffClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "staff-42",
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
	})

	if _, err := VerifyStaffToken(tok, "secret_b", now); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestSessionCan_NilSession(t *testing.T) {
	var s *Session
	if s.Can(CapFrontDesk) {
		t.Fatalf("nil session must hold no capabilities")
	}
}
