// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds application configuration
type Config struct {
	GRPCAddr    string
	APIToken    string
	StoreDriver string // memory, postgres or sqlite
	DBConnStr   string // PostgreSQL connection string (built from DB_* vars when empty)
	SQLitePath  string
	LogLevel    string
	LogPretty   bool
	Simulator   SimulatorConfig
}

// SimulatorConfig holds price simulator configuration
type SimulatorConfig struct {
	Enabled          bool
	Seed             uint64 // 0 picks a random seed at startup
	IncreaseSchedule string // cron spec of the increase-biased intraday job
	DecreaseSchedule string // cron spec of the decrease-biased intraday job
	Winners          int    // Overnight pass: instruments ticked up
	Losers           int    // Overnight pass: instruments ticked down
	OvernightOnStop  bool   // Run an overnight pass when the simulation is torn down
	OvernightAtClose bool   // Run an overnight pass when the market session closes
	RepriceHoldings  bool   // Propagate ticks to holding CurrentPrice
	SeedInstruments  bool   // Seed the default instrument universe at startup
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		GRPCAddr:    getEnv("GRPC_ADDR", ":8080"),
		APIToken:    getEnv("API_TOKEN", "dev-token"),
		StoreDriver: getEnv("STORE_DRIVER", StoreMemory),
		DBConnStr:   getEnv("DB_CONN_STR", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "tradesim.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPretty:   getEnvAsBool("LOG_PRETTY", false),
		Simulator: SimulatorConfig{
			Enabled:          getEnvAsBool("SIM_ENABLED", true),
			Seed:             getEnvAsUint64("SIM_SEED", 0),
			IncreaseSchedule: getEnv("SIM_INCREASE_SCHEDULE", "@every 90s"),
			DecreaseSchedule: getEnv("SIM_DECREASE_SCHEDULE", "@every 1000s"),
			Winners:          getEnvAsInt("SIM_WINNERS", 5),
			Losers:           getEnvAsInt("SIM_LOSERS", 5),
			OvernightOnStop:  getEnvAsBool("SIM_OVERNIGHT_ON_STOP", true),
			OvernightAtClose: getEnvAsBool("SIM_OVERNIGHT_AT_CLOSE", false),
			RepriceHoldings:  getEnvAsBool("SIM_REPRICE_HOLDINGS", true),
			SeedInstruments:  getEnvAsBool("SIM_SEED_INSTRUMENTS", true),
		},
	}

	if cfg.DBConnStr == "" && cfg.StoreDriver == StorePostgres {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		cfg.DBConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "tradesim"),
		)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (expected memory, postgres or sqlite)", c.StoreDriver)
	}

	if c.APIToken == "" {
		return fmt.Errorf("API_TOKEN cannot be empty")
	}

	if c.Simulator.Winners < 0 || c.Simulator.Losers < 0 {
		return fmt.Errorf("SIM_WINNERS and SIM_LOSERS must not be negative")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintVal, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
