package messagestore

import (
	"context"
	"database/sql"
	"time"
)

// Row is one raw row returned by a message store retrieval function, before
// conversion to a Message. Data and Metadata hold the stored JSON text and
// are invalid when the stored value was NULL.
type Row struct {
	ID             string
	StreamName     string
	Type           string
	Position       int64
	GlobalPosition int64
	Data           sql.NullString
	Metadata       sql.NullString
	Time           time.Time
}

// Rowset is the materialized result of one retrieval function call, in the
// order produced by the message store.
type Rowset []Row

// Executor is the session capability retrieval depends on: execute one
// message store function with positional arguments and return its rows.
// Implementations report engine failures as errors carrying the engine's
// message text.
type Executor interface {
	Execute(ctx context.Context, command string, args ...any) (Rowset, error)
}
