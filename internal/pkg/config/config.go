// Package config exposes typed, read-only access to runtime settings.
package config

import (
	"io"
	"time"
)

// Config reads configuration values by dotted key (for example
// "modules.auth.session_ttl_days"). Missing keys yield the zero value.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetFloat64(key string) float64

	// GetSecond reads an integer and returns it as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer and returns it as a number of minutes.
	GetMinute(key string) time.Duration
	// GetDay reads an integer and returns it as a number of 24h days.
	GetDay(key string) time.Duration

	// GetArray reads either a YAML list or a comma separated string. Elements
	// are trimmed and empty elements dropped.
	GetArray(key string) []string
}
