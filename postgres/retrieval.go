package postgres

import (
	"fmt"

	messagestore "github.com/kpricorn/message-store-postgres"
)

// retrieval supplies the command text and parameter list for one kind of
// stream. The executor depends only on this contract; the stream and
// category variants differ solely in what they ask the message store for.
type retrieval interface {
	// Kind names the variant for logs and metrics.
	Kind() string
	// SQLCommand returns the retrieval function call, fixed per variant.
	SQLCommand() string
	// Parameters builds the positional argument list for one invocation.
	// Order and count must match the function's signature exactly.
	Parameters(position int64) []any
	// DefaultPosition is the start-of-stream position used when the caller
	// supplies none.
	DefaultPosition() int64
	// Describe renders a human-readable description of one invocation.
	Describe(position int64) string
	// assure validates the variant's arguments at construction, before any
	// query executes.
	assure() error
}

const streamCommand = `
	SELECT
		id::varchar,
		stream_name::varchar,
		type::varchar,
		position::bigint,
		global_position::bigint,
		data::varchar,
		metadata::varchar,
		time::timestamp
	FROM
		get_stream_messages(
			stream_name => $1,
			"position" => $2,
			batch_size => $3,
			condition => $4
		)`

const categoryCommand = `
	SELECT
		id::varchar,
		stream_name::varchar,
		type::varchar,
		position::bigint,
		global_position::bigint,
		data::varchar,
		metadata::varchar,
		time::timestamp
	FROM
		get_category_messages(
			category_name => $1,
			"position" => $2,
			batch_size => $3,
			correlation => $4,
			consumer_group_member => $5,
			consumer_group_size => $6,
			condition => $7
		)`

// streamRetrieval reads an individual stream by stream-local position.
type streamRetrieval struct {
	streamName string
	batchSize  int64
	condition  *string
}

func (r *streamRetrieval) Kind() string {
	return "stream"
}

func (r *streamRetrieval) SQLCommand() string {
	return streamCommand
}

func (r *streamRetrieval) Parameters(position int64) []any {
	return []any{r.streamName, position, r.batchSize, r.condition}
}

func (r *streamRetrieval) DefaultPosition() int64 {
	return 0
}

func (r *streamRetrieval) Describe(position int64) string {
	return fmt.Sprintf("stream: %s, position: %d, batch size: %d", r.streamName, position, r.batchSize)
}

func (r *streamRetrieval) assure() error {
	if messagestore.IsCategory(r.streamName) {
		return fmt.Errorf("stream retrieval requires an individual stream name, got category %q", r.streamName)
	}
	return nil
}

// categoryRetrieval reads every stream of a category in global log order.
type categoryRetrieval struct {
	category    string
	batchSize   int64
	correlation *string
	groupMember *int64
	groupSize   *int64
	condition   *string
}

func (r *categoryRetrieval) Kind() string {
	return "category"
}

func (r *categoryRetrieval) SQLCommand() string {
	return categoryCommand
}

func (r *categoryRetrieval) Parameters(position int64) []any {
	return []any{r.category, position, r.batchSize, r.correlation, r.groupMember, r.groupSize, r.condition}
}

// DefaultPosition returns 1, the first global position in the log.
func (r *categoryRetrieval) DefaultPosition() int64 {
	return 1
}

func (r *categoryRetrieval) Describe(position int64) string {
	return fmt.Sprintf("category: %s, position: %d, batch size: %d", r.category, position, r.batchSize)
}

func (r *categoryRetrieval) assure() error {
	if !messagestore.IsCategory(r.category) {
		return fmt.Errorf("category retrieval requires a category name, got stream %q", r.category)
	}
	return nil
}
