package postgres

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	messagestore "github.com/kpricorn/message-store-postgres"
)

// translations maps the message store's validation error texts to domain
// error constructors. Evaluated in order against the cleaned engine message,
// first prefix match wins.
var translations = []struct {
	prefix string
	wrap   func(message string, err error) error
}{
	{"Correlation must be a category", newCorrelationError},
	{"Consumer group size must not be less than 1", newConsumerGroupError},
	{"Consumer group member must be less than the group size", newConsumerGroupError},
	{"Consumer group member must not be less than 0", newConsumerGroupError},
	{"Consumer group member and size must be specified", newConsumerGroupError},
	{"Retrieval with SQL condition is not activated", newSQLConditionError},
}

func newCorrelationError(message string, err error) error {
	return &messagestore.CorrelationError{Message: message, Err: err}
}

func newConsumerGroupError(message string, err error) error {
	return &messagestore.ConsumerGroupError{Message: message, Err: err}
}

func newSQLConditionError(message string, err error) error {
	return &messagestore.SQLConditionError{Message: message, Err: err}
}

// translateError re-labels recognized message store validation failures as
// typed domain errors carrying the cleaned message text. Anything
// unrecognized is logged and returned unchanged. Translation never retries
// or suppresses.
func translateError(err error, log *slog.Logger) error {
	message := engineMessage(err)

	for _, t := range translations {
		if strings.HasPrefix(message, t.prefix) {
			return t.wrap(message, err)
		}
	}

	if message != "" {
		log.Debug("engine error did not translate", "message", message)
	}

	return err
}

// engineMessage extracts the engine's message text from a driver error and
// strips the generic "ERROR:" prefix and surrounding whitespace.
func engineMessage(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return strings.TrimSpace(pqErr.Message)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.TrimSpace(pgErr.Message)
	}

	message := strings.TrimSpace(err.Error())
	message = strings.TrimPrefix(message, "ERROR:")
	return strings.TrimSpace(message)
}
