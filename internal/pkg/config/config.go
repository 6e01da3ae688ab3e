package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving time-based configuration values.
//
// Values are stored as integers and scaled to the unit named by the method.
type TimeConfig interface {
	// GetSecond retrieves the value associated with key as seconds.
	GetSecond(key string) time.Duration
	// GetMinute retrieves the value associated with key as minutes.
	GetMinute(key string) time.Duration
	// GetDay retrieves the value associated with key as days (24h).
	GetDay(key string) time.Duration
}

// NumberConfig defines helpers for retrieving numeric configuration values.
type NumberConfig interface {
	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int
	// GetInt32 retrieves the value associated with key as an int32.
	GetInt32(key string) int32
	// GetInt64 retrieves the value associated with key as an int64.
	GetInt64(key string) int64
	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64
}

// Config defines a set of methods for retrieving configuration values of various types.
//
// Missing keys yield the zero value of the requested type.
type Config interface {
	io.Closer
	TimeConfig
	NumberConfig

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetBinary retrieves the base64 encoded value associated with key as bytes.
	GetBinary(key string) []byte

	// GetArray retrieves the value associated with key as a slice of strings.
	// The value is stored with format <element1>,<element2>,... and blank
	// elements are dropped.
	GetArray(key string) []string
}
