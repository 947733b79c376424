// Package postgres is the relational storage driver. Mutations run inside a
// single database transaction so a failed mutation leaves no partial state.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nrattyp233/create-a-date1/internal/store"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	cfg.MinConns = 0
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	age INT NOT NULL,
	bio TEXT NOT NULL DEFAULT '',
	vibe TEXT NOT NULL DEFAULT '',
	photos TEXT[] NOT NULL DEFAULT '{}',
	interests TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS swipes (
	id BIGINT PRIMARY KEY,
	swiper_id BIGINT NOT NULL,
	swiped_id BIGINT NOT NULL,
	direction TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_swipes_swiper ON swipes (swiper_id);

CREATE TABLE IF NOT EXISTS matches (
	id BIGINT PRIMARY KEY,
	user_a_id BIGINT NOT NULL,
	user_b_id BIGINT NOT NULL,
	last_message TEXT NOT NULL DEFAULT '',
	last_message_at TIMESTAMPTZ,
	unread_a BOOLEAN NOT NULL DEFAULT FALSE,
	unread_b BOOLEAN NOT NULL DEFAULT FALSE,
	matched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_a_id, user_b_id)
);

CREATE TABLE IF NOT EXISTS messages (
	id BIGINT PRIMARY KEY,
	match_id BIGINT NOT NULL,
	sender_id BIGINT NOT NULL,
	text TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_messages_match ON messages (match_id);

CREATE TABLE IF NOT EXISTS date_ideas (
	id BIGINT PRIMARY KEY,
	creator_id BIGINT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	location TEXT NOT NULL,
	applicant_ids BIGINT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Mutate(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	dbtx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		_ = dbtx.Rollback(ctx)
	}()

	if err := fn(ctx, &tx{q: dbtx}); err != nil {
		return err
	}

	if err := dbtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}
