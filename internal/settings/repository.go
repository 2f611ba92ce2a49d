package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"frontdesk/internal/occupancy"
)

// Settings is the hotel-wide operations configuration the resolver and gate
// consume: check-in/out wall-clock boundaries plus the tenant's checkout
// policy.
type Settings struct {
	Hours  occupancy.OperationsHours
	Policy occupancy.Policy
}

// Defaults is what the desk runs on when nothing is configured: check-in
// 14:00, check-out 12:00, no checkout with debt, approval threshold off.
// Missing configuration degrades here instead of failing a status screen.
func Defaults() Settings {
	return Settings{
		Hours: occupancy.DefaultOperationsHours(),
		Policy: occupancy.Policy{
			AllowCheckoutWithDebt: false,
			ApprovalThreshold:     decimal.Zero,
		},
	}
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Load reads the single hotel_settings row. An absent row, or any column
// that fails to parse, falls back to Defaults() for that field; Load only
// errors on genuine query failures.
func (r *Repository) Load(ctx context.Context) (Settings, error) {
	const q = `
SELECT check_in_time::text, check_out_time::text, allow_checkout_with_debt, approval_threshold::text
FROM hotel_settings
WHERE id = 1
`
	out := Defaults()

	var checkIn, checkOut, threshold string
	var allowDebt bool
	err := r.db.QueryRow(ctx, q).Scan(&checkIn, &checkOut, &allowDebt, &threshold)
	if errors.Is(err, pgx.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return out, err
	}

	if t, perr := occupancy.ParseTimeOfDay(clip(checkIn)); perr == nil {
		out.Hours.CheckIn = t
	}
	if t, perr := occupancy.ParseTimeOfDay(clip(checkOut)); perr == nil {
		out.Hours.CheckOut = t
	}
	out.Policy.AllowCheckoutWithDebt = allowDebt
	if d, perr := decimal.NewFromString(threshold); perr == nil {
		out.Policy.ApprovalThreshold = d
	}
	return out, nil
}

// clip trims postgres time strings like "14:00:00" down to "14:00".
func clip(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
