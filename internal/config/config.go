package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// League
	LeagueID int

	// Data layout
	RawRoot     string
	PeriodsPath string

	// Server
	Addr    string
	MCPPath string

	// Refresh cadence
	PollInterval     time.Duration
	EntryConcurrency int

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LeagueID: envInt("FPL_LEAGUE_ID", 0),

		RawRoot:     envStr("FPL_RAW_ROOT", "data/raw"),
		PeriodsPath: envStr("FPL_PERIODS_PATH", "periods.yaml"),

		Addr:    envStr("FPL_ADDR", ":8080"),
		MCPPath: envStr("FPL_MCP_PATH", "/mcp"),

		PollInterval:     time.Duration(envInt("FPL_POLL_INTERVAL_SEC", 60)) * time.Second,
		EntryConcurrency: envInt("FPL_ENTRY_CONCURRENCY", 4),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
