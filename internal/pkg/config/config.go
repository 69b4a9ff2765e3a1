package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of
// various types. Implementations handle retrieval and type conversion,
// returning zero values when a key is missing or unconvertible.
type Config interface {
	io.Closer

	// GetString retrieves the configuration value associated with the given key as a string.
	GetString(key string) string

	// GetBool retrieves the configuration value associated with the given key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the configuration value associated with the given key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the configuration value associated with the given key as an int32.
	GetInt32(key string) int32

	// GetUint retrieves the configuration value associated with the given key as a uint.
	GetUint(key string) uint

	// GetFloat64 retrieves the configuration value associated with the given key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the configuration value associated with the given key
	// as a duration counted in seconds.
	GetSecond(key string) time.Duration

	// GetBinary retrieves the configuration value associated with the given key
	// as a byte slice. The stored value is base64 encoded.
	GetBinary(key string) []byte

	// GetArray retrieves the configuration value associated with the given key
	// as a slice of strings. The stored format is <element1>,<element2>,...
	GetArray(key string) []string
}
