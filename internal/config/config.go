// Package config loads the server settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/billed/internal/models"
)

// DevSecret is the signing secret used when JWT_SECRET is unset.
const DevSecret = "billed-dev-secret"

// Config holds the server settings.
type Config struct {
	Port        int
	DBPath      string
	DatabaseURL string
	ReceiptsDir string

	// PublicURL is the base URL receipt links are built from.
	PublicURL string

	// APIURL is the base URL the pages use to reach the bills API.
	APIURL string

	JWTSecret string
	TokenTTL  time.Duration

	// Seed account created at startup when SeedEmail is set.
	SeedEmail    string
	SeedPassword string
	SeedType     models.UserType
}

// SecureCookies reports whether the session cookie needs the Secure flag.
func (c Config) SecureCookies() bool {
	return strings.HasPrefix(c.PublicURL, "https://")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration. The given .env files (default ".env") are
// loaded first when they exist; variables already set in the environment
// win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	local := fmt.Sprintf("http://localhost:%d", port)
	cfg := Config{
		Port:         port,
		DBPath:       getEnv("DB_PATH", "./data/billed.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ReceiptsDir:  getEnv("RECEIPTS_DIR", "./data/receipts"),
		PublicURL:    getEnv("PUBLIC_URL", local),
		APIURL:       getEnv("API_URL", local),
		JWTSecret:    getEnv("JWT_SECRET", DevSecret),
		TokenTTL:     ttl,
		SeedEmail:    os.Getenv("SEED_EMAIL"),
		SeedPassword: os.Getenv("SEED_PASSWORD"),
		SeedType:     models.UserType(getEnv("SEED_TYPE", string(models.UserEmployee))),
	}

	if cfg.SeedEmail != "" && cfg.SeedPassword == "" {
		return Config{}, errors.New("SEED_PASSWORD is required with SEED_EMAIL")
	}
	return cfg, nil
}
