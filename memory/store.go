// Package memory provides an in-memory message store that serves the same
// session capability as the Postgres-backed session. It reproduces the
// message store's retrieval semantics, including its validation errors, and
// is suitable for testing and demonstration purposes.
package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	messagestore "github.com/kpricorn/message-store-postgres"
)

// Store is an append-only in-memory message log. Writes assign message IDs,
// stream-local positions and global positions; retrieval dispatches on the
// requested message store function.
//
// SQL conditions are always refused with the store's "not activated" error,
// since evaluating a free-form condition requires the SQL engine.
type Store struct {
	mu   sync.RWMutex
	rows []messagestore.Row
	next map[string]int64
	now  func() time.Time
}

// NewStore creates an empty in-memory message store.
func NewStore() *Store {
	return &Store{
		next: make(map[string]int64),
		now:  time.Now,
	}
}

// Put appends one message to the given stream and returns its global
// position. Data and metadata may be nil, in which case the stored fields
// are absent.
func (s *Store) Put(streamName, messageType string, data, metadata map[string]any) (int64, error) {
	dataText, err := encodeField(data)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal data: %w", err)
	}
	metadataText, err := encodeField(metadata)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := messagestore.Row{
		ID:             uuid.NewString(),
		StreamName:     streamName,
		Type:           messageType,
		Position:       s.next[streamName],
		GlobalPosition: int64(len(s.rows)) + 1,
		Data:           dataText,
		Metadata:       metadataText,
		Time:           s.now().UTC(),
	}

	s.rows = append(s.rows, row)
	s.next[streamName] = row.Position + 1

	return row.GlobalPosition, nil
}

func encodeField(value map[string]any) (sql.NullString, error) {
	if value == nil {
		return sql.NullString{}, nil
	}
	text, err := json.Marshal(value)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(text), Valid: true}, nil
}

// Execute dispatches one message store function call against the in-memory
// log. Validation failures are reported with the engine's error texts so
// they translate the same way as with a real session.
func (s *Store) Execute(_ context.Context, command string, args ...any) (messagestore.Rowset, error) {
	switch {
	case strings.Contains(command, "get_category_messages"):
		return s.categoryMessages(args)
	case strings.Contains(command, "get_stream_messages"):
		return s.streamMessages(args)
	default:
		return nil, fmt.Errorf("unsupported message store command: %s", command)
	}
}

func (s *Store) streamMessages(args []any) (messagestore.Rowset, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("stream retrieval expects 4 arguments, got %d", len(args))
	}

	streamName, err := argString(args[0])
	if err != nil {
		return nil, err
	}
	position, err := argInt64(args[1])
	if err != nil {
		return nil, err
	}
	batchSize, err := argInt64(args[2])
	if err != nil {
		return nil, err
	}
	condition := argStringPtr(args[3])

	if condition != nil {
		return nil, fmt.Errorf("ERROR: Retrieval with SQL condition is not activated")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var rowset messagestore.Rowset
	for _, row := range s.rows {
		if row.StreamName != streamName || row.Position < position {
			continue
		}
		rowset = append(rowset, row)
		if int64(len(rowset)) >= batchSize {
			break
		}
	}

	return rowset, nil
}

func (s *Store) categoryMessages(args []any) (messagestore.Rowset, error) {
	if len(args) != 7 {
		return nil, fmt.Errorf("category retrieval expects 7 arguments, got %d", len(args))
	}

	category, err := argString(args[0])
	if err != nil {
		return nil, err
	}
	position, err := argInt64(args[1])
	if err != nil {
		return nil, err
	}
	batchSize, err := argInt64(args[2])
	if err != nil {
		return nil, err
	}
	correlation := argStringPtr(args[3])
	groupMember := argInt64Ptr(args[4])
	groupSize := argInt64Ptr(args[5])
	condition := argStringPtr(args[6])

	if correlation != nil && !messagestore.IsCategory(*correlation) {
		return nil, fmt.Errorf("ERROR: Correlation must be a category '%s'", *correlation)
	}
	if err := assureConsumerGroup(groupMember, groupSize); err != nil {
		return nil, err
	}
	if condition != nil {
		return nil, fmt.Errorf("ERROR: Retrieval with SQL condition is not activated")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var rowset messagestore.Rowset
	for _, row := range s.rows {
		if messagestore.Category(row.StreamName) != category || row.GlobalPosition < position {
			continue
		}
		if correlation != nil && !correlated(row, *correlation) {
			continue
		}
		if groupSize != nil && partition(row.StreamName, *groupSize) != *groupMember {
			continue
		}
		rowset = append(rowset, row)
		if int64(len(rowset)) >= batchSize {
			break
		}
	}

	return rowset, nil
}

func assureConsumerGroup(member, size *int64) error {
	if (member == nil) != (size == nil) {
		return fmt.Errorf("ERROR: Consumer group member and size must be specified")
	}
	if size == nil {
		return nil
	}
	if *size < 1 {
		return fmt.Errorf("ERROR: Consumer group size must not be less than 1")
	}
	if *member < 0 {
		return fmt.Errorf("ERROR: Consumer group member must not be less than 0")
	}
	if *member >= *size {
		return fmt.Errorf("ERROR: Consumer group member must be less than the group size")
	}
	return nil
}

// correlated reports whether the row's metadata carries a correlation stream
// name belonging to the given category.
func correlated(row messagestore.Row, correlation string) bool {
	if !row.Metadata.Valid {
		return false
	}
	var metadata map[string]any
	if err := json.Unmarshal([]byte(row.Metadata.String), &metadata); err != nil {
		return false
	}
	correlationStreamName, ok := metadata["correlationStreamName"].(string)
	if !ok {
		return false
	}
	return messagestore.Category(correlationStreamName) == correlation
}

// partition assigns a stream to a consumer group member by hashing its
// identifier.
func partition(streamName string, groupSize int64) int64 {
	id := messagestore.Identifier(streamName)
	if id == "" {
		id = streamName
	}
	h := fnv.New64a()
	h.Write([]byte(id))
	return int64(h.Sum64() % uint64(groupSize))
}

func argString(arg any) (string, error) {
	s, ok := arg.(string)
	if !ok {
		return "", fmt.Errorf("expected string argument, got %T", arg)
	}
	return s, nil
}

func argInt64(arg any) (int64, error) {
	switch v := arg.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("expected integer argument, got %T", arg)
	}
}

func argStringPtr(arg any) *string {
	switch v := arg.(type) {
	case *string:
		return v
	case string:
		return &v
	default:
		return nil
	}
}

func argInt64Ptr(arg any) *int64 {
	switch v := arg.(type) {
	case *int64:
		return v
	case int64:
		return &v
	default:
		return nil
	}
}
