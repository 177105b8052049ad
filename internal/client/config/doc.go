// Package config loads runtime configuration for the gradebook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file, then GRADEBOOK_* environment variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend API root, e.g. http://127.0.0.1:5000/api
//	-t int      request timeout (milliseconds)
//	-d string   session database path
//	-l string   log level
//
// Environment
//
//	GRADEBOOK_BASE_URL, GRADEBOOK_REQUEST_TIMEOUT (e.g. "5s"),
//	GRADEBOOK_SESSION_DB, GRADEBOOK_LOG_LEVEL
//
// # JSON schema
//
//	{
//	  "base_url": "http://127.0.0.1:5000/api",
//	  "request_timeout": "5s",
//	  "session_db_path": "session.db",
//	  "log_level": "info"
//	}
package config
