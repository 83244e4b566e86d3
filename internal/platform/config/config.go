// Package config holds the configuration surface of the simulation.
// The game constants are fixed per run but overridable through the
// environment; server tuning knobs live here too so one struct can be
// threaded through the binaries.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds game constants and server settings.
type Config struct {
	// World generation
	MapWidth     int
	MapHeight    int
	MapSplitX    int
	MapSplitY    int
	StationCount int

	// Economy
	InitialBalance    int
	GasFeePerDistance float64
	TrainCapacity     int
	TrainTicketPrice  int
	TrainSpeedPerDay  float64
	StartDate         time.Time

	// Server
	ServerPort    string
	JournalDriver string // "sqlite" or "postgres"
	SQLitePath    string
	PostgresDSN   string

	// Tuning
	BroadcastBuffer  int
	ClientSendBuffer int
	DBMaxOpenConns   int
	DBMaxIdleConns   int
}

// Load reads configuration from the environment, falling back to the
// build-time defaults of the original game rules.
func Load() *Config {
	// .env is optional for local development
	_ = godotenv.Load()

	cfg := &Config{
		MapWidth:     getEnvInt("MAP_WIDTH", 1024),
		MapHeight:    getEnvInt("MAP_HEIGHT", 1024),
		MapSplitX:    getEnvInt("MAP_SPLIT_X", 4),
		MapSplitY:    getEnvInt("MAP_SPLIT_Y", 4),
		StationCount: getEnvInt("STATION_COUNT", 10),

		InitialBalance:    getEnvInt("INITIAL_BALANCE", 2000),
		GasFeePerDistance: getEnvFloat("GAS_FEE_PER_DISTANCE", 0.46),
		TrainCapacity:     getEnvInt("TRAIN_CAPACITY", 240),
		TrainTicketPrice:  getEnvInt("TRAIN_TICKET_PRICE", 12),
		TrainSpeedPerDay:  getEnvFloat("TRAIN_SPEED_PER_DAY", 80),

		ServerPort:    getEnv("SERVER_PORT", "8080"),
		JournalDriver: getEnv("JOURNAL_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "magnate.db"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),

		BroadcastBuffer:  getEnvInt("BROADCAST_BUFFER", 256),
		ClientSendBuffer: getEnvInt("CLIENT_SEND_BUFFER", 64),
		DBMaxOpenConns:   getEnvInt("DB_MAX_OPEN_CONNS", 8),
		DBMaxIdleConns:   getEnvInt("DB_MAX_IDLE_CONNS", 4),
	}

	start := getEnv("START_DATE", "2021-01-01")
	t, err := time.Parse("2006-01-02", start)
	if err != nil {
		log.Printf("WARNING: invalid START_DATE %q, using 2021-01-01", start)
		t = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	cfg.StartDate = t

	switch cfg.JournalDriver {
	case "sqlite":
	case "postgres":
		if cfg.PostgresDSN == "" {
			log.Println("WARNING: JOURNAL_DRIVER=postgres but POSTGRES_DSN not set")
		}
	case "none":
	default:
		log.Printf("WARNING: unknown JOURNAL_DRIVER %q (using sqlite)", cfg.JournalDriver)
		cfg.JournalDriver = "sqlite"
	}

	return cfg
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("WARNING: %s=%q is not a number, using %g", key, value, defaultValue)
		return defaultValue
	}
	return f
}
