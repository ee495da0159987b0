// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-fin-track client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the display locale.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local store that keeps the
	// persisted bearer token.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the address and timeout of the finance REST API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Locale is the BCP 47 tag used to format money values (e.g. "pt-BR").
	// Env: APP_LOCALE
	Locale string `env:"LOCALE"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the path of the SQLite file (e.g. "fintrack.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds configuration of the outbound REST adapter.
type Adapter struct {
	// HTTPAddress is the base URL of the finance API
	// (e.g. "http://localhost:3333" or "api.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single outbound request
	// (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval defines how often the dashboard data is re-fetched
	// while the user is logged in. Zero (the default) disables it.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Log holds logging output settings.
type Log struct {
	// File is the path of the JSON log file. The terminal is owned by the
	// UI, so logs never go to stdout.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads and merges the application configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
