package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Ledger behavior
	LedgerMaxConflictRetries       int
	HistoryDefaultLimit            int
	FailureRecordsSnapshotBalances bool

	// Rate limiting, e.g. "100-M" for 100 requests per minute per client
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "campaigner-backend")
	viper.SetDefault("LEDGER_MAX_CONFLICT_RETRIES", 3)
	viper.SetDefault("HISTORY_DEFAULT_LIMIT", 50)
	viper.SetDefault("FAILURE_RECORDS_SNAPSHOT_BALANCES", false)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "campaigner-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	maxRetries := viper.GetInt("LEDGER_MAX_CONFLICT_RETRIES")
	if maxRetries < 0 {
		log.Printf("Warning: LEDGER_MAX_CONFLICT_RETRIES is negative (%d). Defaulting to 3.\n", maxRetries)
		maxRetries = 3
	}

	historyLimit := viper.GetInt("HISTORY_DEFAULT_LIMIT")
	if historyLimit <= 0 {
		log.Printf("Warning: HISTORY_DEFAULT_LIMIT must be positive (%d). Defaulting to 50.\n", historyLimit)
		historyLimit = 50
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.LedgerMaxConflictRetries = maxRetries
	cfg.HistoryDefaultLimit = historyLimit
	cfg.FailureRecordsSnapshotBalances = viper.GetBool("FAILURE_RECORDS_SNAPSHOT_BALANCES")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
