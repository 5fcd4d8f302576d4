package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string
	APIKey      string `validate:"required"`

	TrustedProxies []string `validate:"dive,ip"`

	StorageDriver string `validate:"oneof=file sqlite postgres memory"`
	SaveDir       string `validate:"required_if=StorageDriver file"`
	SQLitePath    string `validate:"required_if=StorageDriver sqlite"`
	SaveSlot      string `validate:"required,max=64"`

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	SnapshotCacheSize int           `validate:"min=1"`
	SnapshotCacheTTL  time.Duration `validate:"gt=0"`

	TickInterval       time.Duration `validate:"gt=0"`
	MinutesPerTick     int           `validate:"oneof=1 2 3 4 5 6 10 12 15 20 30 60"`
	ShipHour           int           `validate:"min=0,max=23"`
	WakeHour           int           `validate:"min=0,max=23"`
	WaterDurationHours int           `validate:"min=1"`
	CropDecayPerTick   int           `validate:"min=0"`
	CropWiltThreshold  int           `validate:"min=0"`
	FadePollInterval   time.Duration `validate:"gt=0"`
	FadeTimeout        time.Duration `validate:"gtfield=FadePollInterval"`
	HeadlessFadeDelay  time.Duration
	CatalogPath        string
	ToolSlots          int `validate:"min=1,max=64"`
	ItemSlots          int `validate:"min=1,max=64"`
	PlotCount          int `validate:"min=1,max=1024"`
	DeadLetterPath     string
	EventMaxRetries    int           `validate:"min=0,max=20"`
	EventRetryDelay    time.Duration `validate:"gte=0"`

	// Warnings collects non-fatal issues found while loading
	Warnings []string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DefaultStorageDriver)),
		SaveDir:       getEnv("SAVE_DIR", DefaultSaveDir),
		SQLitePath:    getEnv("SQLITE_PATH", DefaultSQLitePath),
		SaveSlot:      getEnv("SAVE_SLOT", DefaultSaveSlot),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "farmstead"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		SnapshotCacheSize: getEnvAsInt("SNAPSHOT_CACHE_SIZE", DefaultSnapshotCacheSize),
		SnapshotCacheTTL:  getEnvAsDuration("SNAPSHOT_CACHE_TTL", DefaultSnapshotCacheTTL),

		TickInterval:       getEnvAsDuration("TICK_INTERVAL", DefaultTickInterval),
		MinutesPerTick:     getEnvAsInt("MINUTES_PER_TICK", DefaultMinutesPerTick),
		ShipHour:           getEnvAsInt("SHIP_HOUR", DefaultShipHour),
		WakeHour:           getEnvAsInt("WAKE_HOUR", DefaultWakeHour),
		WaterDurationHours: getEnvAsInt("WATER_DURATION_HOURS", DefaultWaterDurationHours),
		CropDecayPerTick:   getEnvAsInt("CROP_DECAY_PER_TICK", DefaultCropDecayPerTick),
		CropWiltThreshold:  getEnvAsInt("CROP_WILT_THRESHOLD", DefaultCropWiltThreshold),
		FadePollInterval:   getEnvAsDuration("FADE_POLL_INTERVAL", DefaultFadePollInterval),
		FadeTimeout:        getEnvAsDuration("FADE_TIMEOUT", DefaultFadeTimeout),
		HeadlessFadeDelay:  getEnvAsDuration("HEADLESS_FADE_DELAY", DefaultHeadlessFadeDelay),
		CatalogPath:        getEnv("CATALOG_PATH", ""),
		ToolSlots:          getEnvAsInt("TOOL_SLOTS", DefaultToolSlots),
		ItemSlots:          getEnvAsInt("ITEM_SLOTS", DefaultItemSlots),
		PlotCount:          getEnvAsInt("PLOT_COUNT", DefaultPlotCount),
		DeadLetterPath:     getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
		EventMaxRetries:    getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:    getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, errors.New(ErrMsgAPIKeyRequired)
	}

	if err := checkSchemaVersion(cfg); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	cfg.collectWarnings()
	return cfg, nil
}

// checkSchemaVersion rejects a .env written for another schema. A missing
// version is only a warning so plain environment variables keep working.
func checkSchemaVersion(cfg *Config) error {
	version, ok := os.LookupEnv("ENV_SCHEMA_VERSION")
	if !ok || version == "" {
		cfg.Warnings = append(cfg.Warnings, WarnMsgSchemaNotSet)
		return nil
	}
	if version != ExpectedEnvSchemaVersion {
		return fmt.Errorf("%s: expected %s, got %s - your .env file may be outdated",
			ErrMsgSchemaMismatch, ExpectedEnvSchemaVersion, version)
	}
	return nil
}

func (c *Config) collectWarnings() {
	if c.APIKey == exampleAPIKey {
		c.Warnings = append(c.Warnings, WarnMsgExampleAPIKey)
	}
	if c.StorageDriver == "postgres" && c.DBPassword == exampleDBPassword {
		c.Warnings = append(c.Warnings, WarnMsgExampleDBPass)
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a time.Duration variable, falling back to the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
