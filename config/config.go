package config

import (
	"os"
	"strconv"
)

// Config is read once at startup from the environment (godotenv loads .env
// in main before this runs).
type Config struct {
	Port          string
	GinMode       string
	StorageDriver string // json | sqlite | mysql
	StoragePath   string // snapshot file for the json driver
	DatabaseDSN   string // DSN for sqlite/mysql drivers
	SeedDemoData  bool
}

func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		GinMode:       getenv("GIN_MODE", ""),
		StorageDriver: getenv("STORAGE_DRIVER", "json"),
		StoragePath:   getenv("STORAGE_PATH", "comanda-snapshot.json"),
		DatabaseDSN:   getenv("DATABASE_DSN", "comanda.db"),
		SeedDemoData:  getbool("SEED_DEMO_DATA", true),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
