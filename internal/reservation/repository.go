package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrStatusConflict signals that the optimistic precondition on a mutating
// call failed: the reservation's status changed between read and write.
// Callers re-resolve the room with fresh data and retry if still valid.
var ErrStatusConflict = errors.New("reservation status changed concurrently")

var ErrNotFound = errors.New("reservation not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const selectColumns = `
id, room_id, guest_id, organization_id, check_in_date, check_out_date, status,
actual_check_in, actual_check_out, created_at`

func (r *Repository) Get(ctx context.Context, id string) (*Reservation, error) {
	const q = `
SELECT` + selectColumns + `
FROM reservations
WHERE id = $1
`
	res, err := scanOne(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// ForRoomAsOf fetches the non-terminal reservations that may govern the room
// on the reference date. This is a broad candidate fetch; the occupancy
// resolver's interval filter remains the canonical overlap rule.
func (r *Repository) ForRoomAsOf(ctx context.Context, roomID string, referenceDate time.Time) ([]Reservation, error) {
	const q = `
SELECT` + selectColumns + `
FROM reservations
WHERE room_id = $1
  AND status NOT IN ('completed', 'cancelled')
  AND check_in_date <= $2
  AND (check_out_date >= $2 OR status = 'checked_in')
ORDER BY created_at, id
`
	rows, err := r.db.Query(ctx, q, roomID, referenceDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// ForRoomsAsOf is the batch variant backing the summary grid: one query for
// every room on the floor plan, grouped by room.
func (r *Repository) ForRoomsAsOf(ctx context.Context, roomIDs []string, referenceDate time.Time) (map[string][]Reservation, error) {
	const q = `
SELECT` + selectColumns + `
FROM reservations
WHERE room_id = ANY($1)
  AND status NOT IN ('completed', 'cancelled')
  AND check_in_date <= $2
  AND (check_out_date >= $2 OR status = 'checked_in')
ORDER BY room_id, created_at, id
`
	rows, err := r.db.Query(ctx, q, roomIDs, referenceDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all, err := scanAll(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]Reservation, len(roomIDs))
	for _, res := range all {
		out[res.RoomID] = append(out[res.RoomID], res)
	}
	return out, nil
}

// CheckIn moves reserved -> checked_in. The WHERE clause is the optimistic
// precondition: zero rows affected means a concurrent mutation won.
func (r *Repository) CheckIn(ctx context.Context, id string, at time.Time) error {
	const q = `
UPDATE reservations
SET status = 'checked_in',
    actual_check_in = $2,
    updated_at = NOW()
WHERE id = $1 AND status = 'reserved'
`
	return r.guarded(ctx, q, id, at)
}

// CheckOut moves checked_in -> completed.
func (r *Repository) CheckOut(ctx context.Context, id string, at time.Time) error {
	const q = `
UPDATE reservations
SET status = 'completed',
    actual_check_out = $2,
    updated_at = NOW()
WHERE id = $1 AND status = 'checked_in'
`
	return r.guarded(ctx, q, id, at)
}

// Cancel is only valid before check-in.
func (r *Repository) Cancel(ctx context.Context, id string) error {
	const q = `
UPDATE reservations
SET status = 'cancelled',
    updated_at = NOW()
WHERE id = $1 AND status = 'reserved'
`
	return r.guarded(ctx, q, id)
}

// Extend pushes the booked checkout date for an in-house guest.
func (r *Repository) Extend(ctx context.Context, id string, newCheckOut time.Time) error {
	const q = `
UPDATE reservations
SET check_out_date = $2,
    updated_at = NOW()
WHERE id = $1 AND status = 'checked_in'
`
	return r.guarded(ctx, q, id, newCheckOut)
}

// TransferRoom moves an in-house guest to another room.
func (r *Repository) TransferRoom(ctx context.Context, id string, newRoomID string) error {
	const q = `
UPDATE reservations
SET room_id = $2,
    updated_at = NOW()
WHERE id = $1 AND status = 'checked_in'
`
	return r.guarded(ctx, q, id, newRoomID)
}

func (r *Repository) guarded(ctx context.Context, q string, args ...any) error {
	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

func scanOne(row pgx.Row) (*Reservation, error) {
	var res Reservation
	var status string
	if err := row.Scan(
		&res.ID, &res.RoomID, &res.GuestID, &res.OrganizationID,
		&res.CheckInDate, &res.CheckOutDate, &status,
		&res.ActualCheckIn, &res.ActualCheckOut, &res.CreatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	res.Status = parsed
	return &res, nil
}

func scanAll(rows pgx.Rows) ([]Reservation, error) {
	var out []Reservation
	for rows.Next() {
		res, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
