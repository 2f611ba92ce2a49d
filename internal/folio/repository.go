package folio

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository reads the folio's net balance. The ledger itself (charges,
// payments, taxes) is owned elsewhere; room-status resolution only ever
// consumes the outstanding amount and appends the occasional front-desk
// charge such as an overstay fee.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// OutstandingBalance returns charges minus payments for the reservation.
// A reservation without folio entries has a zero balance.
func (r *Repository) OutstandingBalance(ctx context.Context, reservationID string) (decimal.Decimal, error) {
	const q = `
SELECT COALESCE(SUM(CASE WHEN entry_type = 'charge' THEN amount ELSE -amount END), 0)::text
FROM folio_entries
WHERE reservation_id = $1
`
	var raw string
	if err := r.db.QueryRow(ctx, q, reservationID).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

// AddCharge appends a charge entry (extend-stay, overstay fee, minibar...).
func (r *Repository) AddCharge(ctx context.Context, reservationID string, amount decimal.Decimal, description string) (string, error) {
	const q = `
INSERT INTO folio_entries (id, reservation_id, entry_type, amount, description)
VALUES ($1, $2, 'charge', $3, $4)
`
	id := uuid.NewString()
	if _, err := r.db.Exec(ctx, q, id, reservationID, amount.String(), description); err != nil {
		return "", err
	}
	return id, nil
}

// RecordPayment appends a payment entry collected at the desk.
func (r *Repository) RecordPayment(ctx context.Context, reservationID string, amount decimal.Decimal, description string) (string, error) {
	const q = `
INSERT INTO folio_entries (id, reservation_id, entry_type, amount, description)
VALUES ($1, $2, 'payment', $3, $4)
`
	id := uuid.NewString()
	if _, err := r.db.Exec(ctx, q, id, reservationID, amount.String(), description); err != nil {
		return "", err
	}
	return id, nil
}
