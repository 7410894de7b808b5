// Package config loads runtime configuration for the PharmaDesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables, after loading an optional .env file (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the catalog API
//	-t int      request timeout (seconds)
//	-s string   session database file
//	-e          keep the session in memory only
//	-l string   log level (debug, info, warn, error)
//
// Environment
//
//	PHARMADESK_API_URL, PHARMADESK_REQUEST_TIMEOUT, PHARMADESK_SESSION_DB,
//	PHARMADESK_EPHEMERAL, PHARMADESK_LOG_LEVEL, PHARMADESK_LOG_FORMAT,
//	PHARMADESK_LOG_BACKEND, OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080/api",
//	  "request_timeout": "10s",
//	  "session_db_path": "session.db",
//	  "log_level": "info"
//	}
//
// The assembled Config is validated with go-playground/validator before
// LoadConfig returns it.
package config
