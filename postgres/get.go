package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	messagestore "github.com/kpricorn/message-store-postgres"
	"github.com/kpricorn/message-store-postgres/metrics"
)

// DefaultBatchSize is the maximum number of messages a retrieval returns per
// call when no batch size is configured.
const DefaultBatchSize = 1000

// Get retrieves batches of messages from one stream or category. The stream
// kind is classified once at construction; Execute is then reusable across
// sequential calls with varying positions.
type Get struct {
	streamName string
	batchSize  int64
	session    messagestore.Executor
	retrieval  retrieval
	log        *slog.Logger
}

type getConfig struct {
	session     messagestore.Executor
	batchSize   int64
	correlation *string
	groupMember *int64
	groupSize   *int64
	condition   *string
	log         *slog.Logger
}

// Option configures a Get at construction.
type Option func(*getConfig)

// WithSession sets the session the retrieval executes through.
func WithSession(session messagestore.Executor) Option {
	return func(c *getConfig) {
		c.session = session
	}
}

// WithBatchSize sets the maximum number of messages returned per call
// (default DefaultBatchSize).
func WithBatchSize(batchSize int64) Option {
	return func(c *getConfig) {
		c.batchSize = batchSize
	}
}

// WithCorrelation restricts a category retrieval to messages whose metadata
// correlates them with the given category.
func WithCorrelation(correlation string) Option {
	return func(c *getConfig) {
		c.correlation = &correlation
	}
}

// WithConsumerGroup restricts a category retrieval to the partition of
// streams assigned to the given member of a consumer group of the given
// size.
func WithConsumerGroup(member, size int64) Option {
	return func(c *getConfig) {
		c.groupMember = &member
		c.groupSize = &size
	}
}

// WithCondition appends a free-form SQL condition to the retrieval. The
// message store rejects it unless condition support is activated.
func WithCondition(condition string) Option {
	return func(c *getConfig) {
		c.condition = &condition
	}
}

// WithLogger sets the logger used for retrieval diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *getConfig) {
		c.log = log
	}
}

// Position returns a pointer to the given position, for supplying an
// explicit starting position to Execute. An explicit position of 0 is
// distinct from passing nil, which selects the variant's default.
func Position(position int64) *int64 {
	return &position
}

// New constructs a retrieval for the given stream name. The name's syntax
// selects the variant: a name without the identifier separator reads a whole
// category in global order, any other name reads that individual stream.
func New(streamName string, opts ...Option) (*Get, error) {
	config := getConfig{
		batchSize: DefaultBatchSize,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.session == nil {
		return nil, errors.New("retrieval requires a session")
	}
	if config.batchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", config.batchSize)
	}

	var r retrieval
	if messagestore.IsCategory(streamName) {
		r = &categoryRetrieval{
			category:    streamName,
			batchSize:   config.batchSize,
			correlation: config.correlation,
			groupMember: config.groupMember,
			groupSize:   config.groupSize,
			condition:   config.condition,
		}
	} else {
		if config.correlation != nil {
			return nil, fmt.Errorf("correlation requires a category, got stream %q", streamName)
		}
		if config.groupMember != nil || config.groupSize != nil {
			return nil, fmt.Errorf("consumer group retrieval requires a category, got stream %q", streamName)
		}
		r = &streamRetrieval{
			streamName: streamName,
			batchSize:  config.batchSize,
			condition:  config.condition,
		}
	}

	if err := r.assure(); err != nil {
		return nil, err
	}

	get := &Get{
		streamName: streamName,
		batchSize:  config.batchSize,
		session:    config.session,
		retrieval:  r,
		log:        config.log.With("stream_name", streamName),
	}

	get.log.Debug("constructed retrieval", "kind", r.Kind(), "batch_size", config.batchSize)

	return get, nil
}

// StreamName returns the stream or category name this retrieval reads.
func (g *Get) StreamName() string {
	return g.streamName
}

// BatchSize returns the configured per-call batch size.
func (g *Get) BatchSize() int64 {
	return g.batchSize
}

// Execute retrieves one batch of messages starting at the given position,
// or at the variant's start-of-stream default when position is nil. The
// result mirrors the order produced by the message store and is never nil
// on success. Exactly one query is executed per call; engine validation
// failures come back as typed domain errors, anything else unchanged.
func (g *Get) Execute(ctx context.Context, position *int64) ([]messagestore.Message, error) {
	kind := g.retrieval.Kind()

	pos := g.retrieval.DefaultPosition()
	if position != nil {
		pos = *position
	}

	g.log.Debug("executing retrieval", "descriptor", g.retrieval.Describe(pos))

	start := time.Now()
	rowset, err := g.session.Execute(ctx, g.retrieval.SQLCommand(), g.retrieval.Parameters(pos)...)
	metrics.ObserveRetrievalDuration(time.Since(start))
	if err != nil {
		metrics.IncRetrieval(kind, metrics.StatusFailed)
		return nil, translateError(err, g.log)
	}

	messages, err := toMessages(rowset)
	if err != nil {
		metrics.IncRetrieval(kind, metrics.StatusFailed)
		return nil, err
	}

	metrics.IncRetrieval(kind, metrics.StatusSuccess)
	metrics.AddMessages(kind, len(messages))

	g.log.Debug("retrieved messages", "kind", kind, "position", pos, "count", len(messages))

	return messages, nil
}
