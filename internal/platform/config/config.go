package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration.
type Config struct {
	Addr         string
	DatabaseURL  string
	CatalogURL   string
	KafkaBrokers []string

	JWTSigningKey string

	// Connector token cipher derivation inputs.
	CipherPassphrase string
	CipherSalt       string

	ShutdownTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:             envOr("ORGREGISTRY_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("ORGREGISTRY_DATABASE_URL"),
		CatalogURL:       envOr("ORGREGISTRY_CATALOG_URL", "http://localhost:8081"),
		JWTSigningKey:    os.Getenv("ORGREGISTRY_JWT_SIGNING_KEY"),
		CipherPassphrase: os.Getenv("ORGREGISTRY_CIPHER_PASSPHRASE"),
		CipherSalt:       os.Getenv("ORGREGISTRY_CIPHER_SALT"),
		ShutdownTimeout:  10 * time.Second,
	}
	if brokers := os.Getenv("ORGREGISTRY_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if cfg.JWTSigningKey == "" {
		// Development default - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	if cfg.CipherPassphrase == "" {
		cfg.CipherPassphrase = "dev-cipher-passphrase"
	}
	if cfg.CipherSalt == "" {
		cfg.CipherSalt = "dev-cipher-salt-0123"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
