package user

import "context"

const usersMigration = `
CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY,
    username text NOT NULL,
    password_hash text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_username_unique
ON users (username);
`

// Migrate creates the users table if it does not exist.
func Migrate(ctx context.Context, pool pool) error {
	_, err := pool.Exec(ctx, usersMigration)
	return err
}
