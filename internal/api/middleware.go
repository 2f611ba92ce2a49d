package api

import (
	"net/http"
	"strings"
	"time"

	"frontdesk/internal/auth"
)

// StaffAuth verifies the Bearer staff token and attaches the session to the
// request context. Every desk endpoint sits behind it; per-capability checks
// happen at the handler or subtree level.
func StaffAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			raw = strings.TrimPrefix(raw, "Bearer ")
			if raw == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing staff token")
				return
			}

			s, err := auth.VerifyStaffToken(raw, secret, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid staff token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// RequireCapability guards a subtree on a single capability.
func RequireCapability(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SessionFromContext(r.Context()).Can(capability) {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "missing capability: "+capability)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
