// Package pgxadapter provides a message store session backed by a pgx
// connection pool, as an alternative to the lib/pq session.
package pgxadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	messagestore "github.com/kpricorn/message-store-postgres"
)

// PoolSession executes message store functions over a pgx pool.
//
// The session does not own the pool; the caller is responsible for closing
// it. Close is therefore a no-op.
type PoolSession struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// Option configures a PoolSession.
type Option func(*PoolSession)

// WithLogger sets the logger used for session diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *PoolSession) {
		s.log = log
	}
}

// NewPoolSession constructs a session over a caller-owned pool.
func NewPoolSession(pool *pgxpool.Pool, opts ...Option) (*PoolSession, error) {
	if pool == nil {
		return nil, errors.New("pgxadapter: nil pool")
	}

	session := &PoolSession{
		pool: pool,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(session)
		}
	}

	return session, nil
}

// Close is a no-op because the pool is owned by the caller.
func (s *PoolSession) Close() error { return nil }

// Execute runs one message store function and materializes its rows.
func (s *PoolSession) Execute(ctx context.Context, command string, args ...any) (messagestore.Rowset, error) {
	rows, err := s.pool.Query(ctx, command, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rowset messagestore.Rowset

	for rows.Next() {
		var row messagestore.Row

		err := rows.Scan(
			&row.ID,
			&row.StreamName,
			&row.Type,
			&row.Position,
			&row.GlobalPosition,
			&row.Data,
			&row.Metadata,
			&row.Time,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}

		rowset = append(rowset, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.log.Debug("executed message store command", "rows", len(rowset))

	return rowset, nil
}
