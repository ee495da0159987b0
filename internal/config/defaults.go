package config

import "time"

const (
	defaultAdapterAddress = "http://localhost:3333"
	defaultRequestTimeout = 15 * time.Second
	defaultDSN            = "fintrack.db"
	defaultLocale         = "pt-BR"
	defaultLogFile        = "fintrack.log"
)

// defaultConfig is the lowest-priority source. The refresh worker has no
// default interval and stays disabled unless configured.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{Locale: defaultLocale},
		Storage: Storage{DB: DB{DSN: defaultDSN}},
		Adapter: Adapter{
			HTTPAddress:    defaultAdapterAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Log: Log{File: defaultLogFile},
	}
}
