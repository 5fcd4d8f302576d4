package config

import "time"

// ExpectedEnvSchemaVersion is the .env schema version the application expects
const ExpectedEnvSchemaVersion = "1.0"

// Defaults
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultEnvironment = "dev"
	DefaultServiceName = "farmstead"
	DefaultVersion     = "dev"

	DefaultStorageDriver = "file"
	DefaultSaveDir       = "saves"
	DefaultSQLitePath    = "saves/farmstead.db"
	DefaultSaveSlot      = "default"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultSnapshotCacheSize = 16
	DefaultSnapshotCacheTTL  = 10 * time.Minute

	DefaultTickInterval       = 700 * time.Millisecond
	DefaultMinutesPerTick     = 1
	DefaultShipHour           = 18
	DefaultWakeHour           = 6
	DefaultWaterDurationHours = 24
	DefaultCropDecayPerTick   = 1
	DefaultCropWiltThreshold  = 0
	DefaultFadePollInterval   = time.Second
	DefaultFadeTimeout        = 30 * time.Second
	DefaultHeadlessFadeDelay  = 500 * time.Millisecond
	DefaultToolSlots          = 8
	DefaultItemSlots          = 8
	DefaultPlotCount          = 24
	DefaultDeadLetterPath     = "logs/deadletter.jsonl"
	DefaultEventMaxRetries    = 5
	DefaultEventRetryDelay    = 2 * time.Second
)

// Error Messages
const (
	ErrMsgAPIKeyRequired = "API_KEY environment variable must be set for security"
	ErrMsgInvalidPort    = "invalid PORT value"
	ErrMsgInvalidConfig  = "invalid configuration"
	ErrMsgSchemaMismatch = "ENV_SCHEMA_VERSION mismatch"
)

// Warnings returned alongside a valid configuration
const (
	WarnMsgExampleAPIKey = "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32"
	WarnMsgExampleDBPass = "DB_PASSWORD appears to be using the example value - please use a secure password"
	WarnMsgSchemaNotSet  = "ENV_SCHEMA_VERSION is not set - your .env file may be outdated"

	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
	exampleDBPassword = "change_this_secure_password"
)
