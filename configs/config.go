package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

func load() {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})
}

func Config(key string) string {
	load()
	return os.Getenv(key)
}

func String(key, fallback string) string {
	load()
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func Int(key string, fallback int) int {
	value := Config(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, value, fallback)
		return fallback
	}
	return i
}

func Bool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(Config(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func Duration(key string, fallback time.Duration) time.Duration {
	value := Config(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Warning: %s=%q is not a duration, using %s", key, value, fallback)
		return fallback
	}
	return d
}

// Location is the timezone the gym calendar lives in. Dates and slot times are
// always interpreted here, never in UTC.
func Location() *time.Location {
	name := String("APP_TIMEZONE", "Europe/Zurich")
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, falling back to local time", name)
		return time.Local
	}
	return loc
}

func DefaultLocation() string {
	return String("DEFAULT_LOCATION", "Pgym Studio")
}
