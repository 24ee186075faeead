// Package messagestore provides the core types for reading messages from a
// Message DB style message store: the message record returned to callers,
// stream-name classification, and the domain errors raised by retrieval.
package messagestore

import (
	"time"
)

// Message represents a single stored message read back from the message store.
type Message struct {
	// ID is the unique identifier assigned when the message was written
	ID string
	// StreamName is the name of the stream the message belongs to
	StreamName string
	// Type describes the kind of message
	Type string
	// Position is the message's offset within its stream
	Position int64
	// GlobalPosition is the message's offset within the whole log
	GlobalPosition int64
	// Data contains the decoded message payload, nil if none was stored
	Data map[string]any
	// Metadata contains decoded message metadata, nil if none was stored
	Metadata map[string]any
	// Time is the write time of the message, normalized to UTC
	Time time.Time
}
