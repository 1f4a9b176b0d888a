package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogRunID         = "runID"
	LogDay           = "day"
	LogFrom          = "from"
	LogTo            = "to"
	LogSymbol        = "symbol"
	LogSymbols       = "symbols"
	LogRows          = "rows"
	LogSamples       = "samples"
	LogDialect       = "dialect"
	LogTable         = "table"
	LogPolicy        = "policy"
	LogJob           = "job"
	LogLevelFallback = zerolog.InfoLevel
)
