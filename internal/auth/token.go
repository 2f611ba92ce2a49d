package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Capabilities checked by the desk handlers. Role/permission management
// lives in the identity service; this package only verifies what a token
// claims.
const (
	CapFrontDesk      = "front_desk"
	CapFinanceManage  = "finance_manage"
	CapManagerApprove = "manager_approve"
)

type StaffClaims struct {
	jwt.RegisteredClaims

	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
}

// Session is the verified identity attached to each request.
type Session struct {
	StaffID      string
	Role         string
	Capabilities []string
	ExpiresAt    time.Time
}

// Can reports whether the session holds a capability.
func (s *Session) Can(capability string) bool {
	if s == nil {
		return false
	}
	for _, c := range s.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// VerifyStaffToken verifies an HS256 staff token against the shared secret.
func VerifyStaffToken(tokenString, secret string, now time.Time) (*Session, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if secret == "" {
		return nil, fmt.Errorf("missing auth secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &StaffClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("missing staff subject")
	}

	return &Session{
		StaffID:      claims.Subject,
		Role:         claims.Role,
		Capabilities: claims.Capabilities,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}
