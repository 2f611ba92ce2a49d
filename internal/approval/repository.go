package approval

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Token is a manager-approval credential produced by the out-of-band PIN
// workflow. The action gate only ever checks presence of a valid token; it
// never verifies PINs itself.
type Token struct {
	Token      string     `json:"token"`
	Scope      string     `json:"scope"`
	IssuedBy   string     `json:"issuedBy"`
	IssuedAt   time.Time  `json:"issuedAt"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	RedeemedAt *time.Time `json:"redeemedAt,omitempty"`
}

var ErrTokenInvalid = errors.New("approval token missing, expired or already redeemed")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Issue mints a token after the manager-PIN workflow approved the request.
func (r *Repository) Issue(ctx context.Context, scope, issuedBy string, ttl time.Duration) (*Token, error) {
	const q = `
INSERT INTO approvals (token, scope, issued_by, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING token, scope, issued_by, issued_at, expires_at, redeemed_at
`
	tok := uuid.NewString()
	return scanToken(r.db.QueryRow(ctx, q, tok, scope, issuedBy, time.Now().Add(ttl)))
}

// Present reports whether a live (unexpired, unredeemed) token exists with
// the given scope. An empty token string is simply "not present".
func (r *Repository) Present(ctx context.Context, token, scope string) (bool, error) {
	if token == "" {
		return false, nil
	}
	const q = `
SELECT EXISTS (
  SELECT 1 FROM approvals
  WHERE token = $1 AND scope = $2 AND expires_at > NOW() AND redeemed_at IS NULL
)
`
	var ok bool
	if err := r.db.QueryRow(ctx, q, token, scope).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Redeem consumes the token; a token authorizes exactly one gated action.
func (r *Repository) Redeem(ctx context.Context, token, scope string) error {
	const q = `
UPDATE approvals
SET redeemed_at = NOW()
WHERE token = $1 AND scope = $2 AND expires_at > NOW() AND redeemed_at IS NULL
`
	tag, err := r.db.Exec(ctx, q, token, scope)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTokenInvalid
	}
	return nil
}

func scanToken(row pgx.Row) (*Token, error) {
	var t Token
	if err := row.Scan(&t.Token, &t.Scope, &t.IssuedBy, &t.IssuedAt, &t.ExpiresAt, &t.RedeemedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
