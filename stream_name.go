package messagestore

import "strings"

// IDSeparator separates a stream's category from its identifier in a stream
// name, e.g. "account-123".
const IDSeparator = "-"

// IsCategory reports whether the stream name refers to a whole category
// rather than an individual stream. A name without the identifier separator
// is a category. Any string is classifiable.
func IsCategory(streamName string) bool {
	return !strings.Contains(streamName, IDSeparator)
}

// Category returns the category portion of a stream name. For a category
// name it returns the name unchanged.
func Category(streamName string) string {
	category, _, _ := strings.Cut(streamName, IDSeparator)
	return category
}

// Identifier returns the identifier portion of a stream name, or the empty
// string for a category name.
func Identifier(streamName string) string {
	_, id, _ := strings.Cut(streamName, IDSeparator)
	return id
}
