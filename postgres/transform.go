package postgres

import (
	"encoding/json"
	"fmt"

	messagestore "github.com/kpricorn/message-store-postgres"
)

// toMessages converts raw rows into message records, preserving order.
// Stored NULL data or metadata stays absent on the record; malformed stored
// JSON fails the whole call. Timestamps are normalized to UTC.
func toMessages(rowset messagestore.Rowset) ([]messagestore.Message, error) {
	messages := make([]messagestore.Message, 0, len(rowset))

	for _, row := range rowset {
		message := messagestore.Message{
			ID:             row.ID,
			StreamName:     row.StreamName,
			Type:           row.Type,
			Position:       row.Position,
			GlobalPosition: row.GlobalPosition,
			Time:           row.Time.UTC(),
		}

		if row.Data.Valid {
			if err := json.Unmarshal([]byte(row.Data.String), &message.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal data of message %s: %w", row.ID, err)
			}
		}

		if row.Metadata.Valid {
			if err := json.Unmarshal([]byte(row.Metadata.String), &message.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata of message %s: %w", row.ID, err)
			}
		}

		messages = append(messages, message)
	}

	return messages, nil
}
