// Package uid generates identifiers.
//
// Snowflake IDs are used as user primary keys. UUIDs name uploaded objects and
// tag issued session tokens.
package uid

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
