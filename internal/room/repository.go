package room

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("room not found")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id string) (*Room, error) {
	const q = `
SELECT id, number, category_id, floor, manual_status, do_not_disturb, COALESCE(notes, '')
FROM rooms
WHERE id = $1
`
	rm, err := scanRoom(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rm, nil
}

func (r *Repository) List(ctx context.Context) ([]Room, error) {
	const q = `
SELECT id, number, category_id, floor, manual_status, do_not_disturb, COALESCE(notes, '')
FROM rooms
ORDER BY floor, number
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}

func (r *Repository) SetManualStatus(ctx context.Context, id string, status ManualStatus) error {
	const q = `
UPDATE rooms
SET manual_status = $2, updated_at = NOW()
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, q, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetDoNotDisturb(ctx context.Context, id string, on bool) error {
	const q = `
UPDATE rooms
SET do_not_disturb = $2, updated_at = NOW()
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, q, id, on)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRoom(row pgx.Row) (*Room, error) {
	var rm Room
	var manual string
	if err := row.Scan(&rm.ID, &rm.Number, &rm.CategoryID, &rm.Floor, &manual, &rm.DoNotDisturb, &rm.Notes); err != nil {
		return nil, err
	}
	parsed, err := ParseManualStatus(manual)
	if err != nil {
		return nil, err
	}
	rm.ManualStatus = parsed
	return &rm, nil
}
