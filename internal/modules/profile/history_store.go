// README: Append-only preference and choice history backed by Postgres.
package profile

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"eatbot/internal/types"
)

// HistoryStore handles the append-only history tables. Rows are never
// rewritten or reordered; the serial id doubles as insertion order.
type HistoryStore struct {
	db *pgxpool.Pool
}

// NewHistoryStore returns a HistoryStore backed by the given connection pool.
func NewHistoryStore(db *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{db: db}
}

// EnsureSchema creates the history tables if they do not exist yet.
func (s *HistoryStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS preference_history (
			id         bigserial PRIMARY KEY,
			user_id    text NOT NULL,
			preference text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS preference_history_user_idx ON preference_history (user_id, id DESC);

		CREATE TABLE IF NOT EXISTS restaurant_choices (
			id          bigserial PRIMARY KEY,
			user_id     text NOT NULL,
			place_id    text NOT NULL,
			action_type text NOT NULL,
			created_at  timestamptz NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS restaurant_choices_user_idx ON restaurant_choices (user_id, id DESC);
	`)
	return err
}

// AppendPreference records one preference the user searched for.
func (s *HistoryStore) AppendPreference(ctx context.Context, id types.ID, preference string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO preference_history (user_id, preference) VALUES ($1, $2)
	`, string(id), preference)
	return err
}

// RecentPreferences returns up to limit past preferences, newest first.
func (s *HistoryStore) RecentPreferences(ctx context.Context, id types.ID, limit int) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT preference FROM preference_history
		WHERE user_id = $1 ORDER BY id DESC LIMIT $2
	`, string(id), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// AppendChoice records one restaurant action taken from a carousel card.
func (s *HistoryStore) AppendChoice(ctx context.Context, id types.ID, placeID, actionType string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO restaurant_choices (user_id, place_id, action_type) VALUES ($1, $2, $3)
	`, string(id), placeID, actionType)
	return err
}
