package favorites

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps favorites in the favorites table so they survive
// across sessions and devices.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, owner, planID string) error {
	const q = `
insert into favorites (owner, plan_id)
values ($1, $2)
on conflict (owner, plan_id) do nothing;
`
	if _, err := s.db.Exec(ctx, q, owner, planID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, owner, planID string) error {
	const q = `delete from favorites where owner = $1 and plan_id = $2;`
	if _, err := s.db.Exec(ctx, q, owner, planID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, owner string) ([]string, error) {
	const q = `
select plan_id
from favorites
where owner = $1
order by created_at, plan_id;
`
	rows, err := s.db.Query(ctx, q, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, 16)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Contains(ctx context.Context, owner, planID string) (bool, error) {
	const q = `select exists(select 1 from favorites where owner = $1 and plan_id = $2);`
	var ok bool
	if err := s.db.QueryRow(ctx, q, owner, planID).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return ok, nil
}
