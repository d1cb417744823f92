package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBDSN             string
	DownloadDir       string
	LogFile           string
	JWTSecret         string
	TokenTTL          time.Duration
	EnforceOwnedCheck bool
}

func Load() Config {
	// Optional .env overlay for local runs; real deployments set env vars.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "booknest.db"
	} // sqlite file in project root
	dl := os.Getenv("DOWNLOAD_DIR")
	if dl == "" {
		dl = "./downloads"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./booknest.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret-change-me"
		log.Printf("[config] JWT_SECRET not set, using dev default")
	}
	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	// Two add-to-cart variants exist in the wild: with and without the
	// purchased-library check. Default is the stricter one.
	owned := os.Getenv("ENFORCE_OWNED_CHECK") != "false"

	cfg := Config{
		Port:              port,
		DBDSN:             dsn,
		DownloadDir:       dl,
		LogFile:           logFile,
		JWTSecret:         secret,
		TokenTTL:          ttl,
		EnforceOwnedCheck: owned,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s DOWNLOAD_DIR=%s LOG_FILE=%s TOKEN_TTL=%s ENFORCE_OWNED_CHECK=%t",
		cfg.Port, cfg.DBDSN, cfg.DownloadDir, cfg.LogFile, cfg.TokenTTL, cfg.EnforceOwnedCheck)
	return cfg
}
