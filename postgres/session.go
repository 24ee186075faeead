// Package postgres implements message retrieval against a Message DB style
// PostgreSQL message store: a lib/pq backed session, the stream and category
// retrieval variants, row conversion, and translation of the store's
// validation errors into typed domain errors.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	messagestore "github.com/kpricorn/message-store-postgres"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config contains the settings for a message store session.
type Config struct {
	// ConnectionString is the PostgreSQL connection string, e.g.
	// "host=localhost dbname=message_store sslmode=disable"
	ConnectionString string
}

// Session executes message store functions over a database/sql connection.
// The retrieval functions are called unqualified; the connecting role's
// search_path is expected to include the message store schema, as set up by
// the store's installer.
type Session struct {
	db  *sql.DB
	log *slog.Logger
}

// NewSession opens a connection to the message store database and verifies
// it with a ping.
func NewSession(config Config) (*Session, error) {
	db, err := sql.Open("postgres", config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Session{db: db, log: slog.Default()}, nil
}

// Close closes the database connection.
func (s *Session) Close() error {
	return s.db.Close()
}

// Execute runs one message store function and materializes its rows.
func (s *Session) Execute(ctx context.Context, command string, args ...any) (messagestore.Rowset, error) {
	rows, err := s.db.QueryContext(ctx, command, args...)
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
