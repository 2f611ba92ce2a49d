package approval

import (
	"encoding/json"
	"net/http"
	"time"

	"frontdesk/internal/api"
	"frontdesk/internal/auth"
)

type Handlers struct {
	Repo *Repository
}

type issueRequest struct {
	Scope      string `json:"scope"`
	TTLMinutes int    `json:"ttlMinutes"`
}

// Issue handles POST /v1/approvals. The manager-PIN verification happened
// upstream (the identity service authenticates the manager and grants the
// manager_approve capability); this endpoint just mints the opaque token the
// gated actions will present.
func (h Handlers) Issue(w http.ResponseWriter, r *http.Request) {
	sess := api.SessionFromContext(r.Context())
	if !sess.Can(auth.CapManagerApprove) {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "manager approval capability required")
		return
	}

	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid body")
		return
	}
	if req.Scope != ScopeEarlyCheckIn && req.Scope != ScopeCheckout {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "unknown approval scope")
		return
	}
	ttl := time.Duration(req.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if ttl > time.Hour {
		ttl = time.Hour
	}

	tok, err := h.Repo.Issue(r.Context(), req.Scope, sess.StaffID, ttl)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	api.WriteJSON(w, http.StatusCreated, tok)
}
