package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBPath          string
	CSRFKey         []byte
	SessionKey      []byte
	CookieDomain    string
	CookieSecure    bool
	SessionCapacity int // max live wizard sessions kept in memory
	MigrationsDir   string
	TemplatesDir    string
	StaticDir       string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8585"),
		DBPath:        getEnv("DB_PATH", "./returns.db"),
		CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		TemplatesDir:  getEnv("TEMPLATES_DIR", "templates"),
		StaticDir:     getEnv("STATIC_DIR", "./static"),
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	capStr := getEnv("SESSION_CAPACITY", "1024")
	capacity, err := strconv.Atoi(capStr)
	if err != nil || capacity <= 0 {
		slog.Warn("Invalid SESSION_CAPACITY, using default", "value", capStr)
		capacity = 1024
	}
	cfg.SessionCapacity = capacity

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey reads a base64 key from the environment, generating a random
// one (with a loud warning) when missing or too short. Random keys mean
// cookies stop verifying across restarts.
func loadKey(envVar string) []byte {
	raw := os.Getenv(envVar)
	if raw == "" {
		slog.Warn("Key not set, generating a random one for development. PLEASE SET IT IN PRODUCTION!", "env", envVar)
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Key invalid or shorter than 32 bytes, generating a random one. PLEASE SET A SECURE KEY IN PRODUCTION!", "env", envVar)
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means something is badly wrong with the
		// host; refuse to limp along with a guessable key.
		slog.Error("Failed to read random bytes", "error", err)
		os.Exit(1)
	}
	return b
}
