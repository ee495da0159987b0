package config

import (
	"flag"
	"fmt"
	"time"
)

// ParseFlags parses the client configuration flags from args.
//
// Flags:
//
//	-a finance API base URL
//	-request-timeout request timeout (e.g., "15s")
//	-d SQLite database file used to persist the session token
//	-refresh-interval dashboard auto-refresh interval (e.g., "1m"; disabled when unset)
//	-locale money formatting locale (e.g., "pt-BR")
//	-log-file log file path
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("fintrack", flag.ContinueOnError)

	var (
		address         string
		requestTimeout  time.Duration
		databaseDSN     string
		refreshInterval time.Duration
		locale          string
		logFile         string
		jsonConfigPath  string
	)

	fs.StringVar(&address, "a", "", "Finance API base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&databaseDSN, "d", "", "SQLite database file")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Dashboard refresh interval (e.g., 1m)")
	fs.StringVar(&locale, "locale", "", "Money formatting locale")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{Locale: locale},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{RefreshInterval: refreshInterval},
		Log:          Log{File: logFile},
		JSONFilePath: jsonConfigPath,
	}, nil
}
