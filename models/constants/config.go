package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"
	ExternalName   = "price-indexer"
	Version        = "1.2.0"

	// Database dialect, one of [sqlite, postgres, mysql].
	DatabaseDialect = "DB_DIALECT"

	// Database URL or DSN, depends on the dialect.
	DatabaseURL = "DB_URL"

	// Boolean; enables TLS on postgres and mysql connections.
	DatabaseTLS = "DB_TLS"

	// Boolean; verifies the server certificate when TLS is enabled.
	DatabaseTLSVerify = "DB_TLS_VERIFY"

	// Boolean; creates missing tables at startup.
	DatabaseSync = "DB_SYNC"

	//nolint:gosec // False positive.
	// Access key of the fiat history API.
	AccessKey = "ACCESS_KEY"

	// Base URL of the coin history API.
	CoinAPIURL = "COIN_API_URL"

	// Base URL of the fiat history API.
	FiatAPIURL = "FIAT_API_URL"

	// Comma separated list of coin symbols.
	CoinSymbols = "COIN_SYMBOLS"

	// Comma separated list of fiat symbols.
	FiatSymbols = "FIAT_SYMBOLS"

	// Maximum number of samples requested per coin and day.
	SamplesPerRequest = "SAMPLES_PER_REQUEST"

	// What to do when a coin fails, one of [best-effort, strict].
	CoinFailurePolicy = "COIN_FAILURE_POLICY"

	// How long indexed days are kept in memory. Duration type.
	StatusCache = "STATUS_CACHE"

	// Timeout of a single upstream request. Duration type.
	HTTPTimeout = "HTTP_TIMEOUT"

	// Cron tab to index yesterday.
	IndexerCronTab = "INDEXER_CRON_TAB"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Probe port.
	ProbePort = "PROBE_PORT"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// Chat receiving failure notifications.
	TelegramChatID = "TELEGRAM_CHAT_ID"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	defaultDatabaseDialect   = "sqlite"
	defaultDatabaseURL       = "prices.db"
	defaultDatabaseTLS       = false
	defaultDatabaseTLSVerify = true
	defaultDatabaseSync      = true
	defaultAccessKey         = ""
	defaultCoinAPIURL        = "https://coincodex.com/api/coincodex"
	defaultFiatAPIURL        = "https://api.currencylayer.com"
	defaultCoinSymbols       = "BTC,DOT,ETH,KSM"
	defaultFiatSymbols       = "EUR,GBP,CHF"
	defaultSamplesPerRequest = 1000
	defaultCoinFailurePolicy = "best-effort"
	defaultStatusCache       = 24 * time.Hour
	defaultHTTPTimeout       = 15 * time.Second
	defaultIndexerCronTab    = "5 0 * * *"
	defaultHealthCrontab     = "*/30 * * * *"
	defaultProbePort         = 9090
	defaultTelegramBotToken  = ""
	defaultTelegramChatID    = 0
	defaultLogLevel          = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		DatabaseDialect:   defaultDatabaseDialect,
		DatabaseURL:       defaultDatabaseURL,
		DatabaseTLS:       defaultDatabaseTLS,
		DatabaseTLSVerify: defaultDatabaseTLSVerify,
		DatabaseSync:      defaultDatabaseSync,
		AccessKey:         defaultAccessKey,
		CoinAPIURL:        defaultCoinAPIURL,
		FiatAPIURL:        defaultFiatAPIURL,
		CoinSymbols:       defaultCoinSymbols,
		FiatSymbols:       defaultFiatSymbols,
		SamplesPerRequest: defaultSamplesPerRequest,
		CoinFailurePolicy: defaultCoinFailurePolicy,
		StatusCache:       defaultStatusCache,
		HTTPTimeout:       defaultHTTPTimeout,
		IndexerCronTab:    defaultIndexerCronTab,
		HealthCronTab:     defaultHealthCrontab,
		ProbePort:         defaultProbePort,
		TelegramBotToken:  defaultTelegramBotToken,
		TelegramChatID:    defaultTelegramChatID,
		LogLevel:          defaultLogLevel.String(),
	}
}
