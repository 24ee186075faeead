package messagestore

// Domain errors raised when the message store rejects a retrieval's
// arguments. Each carries the cleaned engine message and wraps the
// original engine error, so callers can match by kind with errors.As
// and still reach the driver error if they need to.

// CorrelationError indicates the correlation filter supplied to a category
// retrieval was not a category stream name.
type CorrelationError struct {
	Message string
	Err     error
}

func (e *CorrelationError) Error() string {
	return e.Message
}

// Unwrap returns the original engine error.
func (e *CorrelationError) Unwrap() error {
	return e.Err
}

// ConsumerGroupError indicates the consumer-group member/size arguments of a
// category retrieval were rejected by the message store.
type ConsumerGroupError struct {
	Message string
	Err     error
}

func (e *ConsumerGroupError) Error() string {
	return e.Message
}

// Unwrap returns the original engine error.
func (e *ConsumerGroupError) Unwrap() error {
	return e.Err
}

// SQLConditionError indicates a retrieval supplied a SQL condition while the
// message store does not have condition support activated.
type SQLConditionError struct {
	Message string
	Err     error
}

func (e *SQLConditionError) Error() string {
	return e.Message
}

// Unwrap returns the original engine error.
func (e *SQLConditionError) Unwrap() error {
	return e.Err
}
