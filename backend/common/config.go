package common

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	Port   = flag.Int("port", 5000, "the listening port")
	LogDir = flag.String("log-dir", "", "specify the log directory")
)

// Config carries every runtime setting the server needs. It is built once in
// main and passed by reference to the components that need it; nothing reads
// secrets from package state.
type Config struct {
	Port           int
	LogDir         string
	DatabasePath   string
	UploadPath     string
	JWTSecret      string
	TokenExpiry    time.Duration
	CookieSecure   bool
	AllowedOrigins []string
	MaxUploadBytes int64
	RedisConn      string
	FrontendDist   string
}

// LoadConfig resolves flags, environment variables and defaults. Environment
// variables win over flag defaults. Call flag.Parse before this.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           *Port,
		LogDir:         *LogDir,
		DatabasePath:   "data/cadvault.db",
		UploadPath:     "uploads",
		JWTSecret:      uuid.New().String(),
		TokenExpiry:    TokenExpiryDuration,
		CookieSecure:   false,
		AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		MaxUploadBytes: 50 << 20,
		RedisConn:      os.Getenv("REDIS_CONN_STRING"),
		FrontendDist:   "frontend/dist",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("UPLOAD_PATH"); v != "" {
		cfg.UploadPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	} else {
		// Random per-process secret: fine for development, but every restart
		// invalidates outstanding sessions.
		SysLog("JWT_SECRET not set, using a generated secret")
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = secure
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.AllowedOrigins = origins
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		maxBytes, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = maxBytes
	}
	if v := os.Getenv("FRONTEND_DIST"); v != "" {
		cfg.FrontendDist = v
	}

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.UploadPath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	return cfg, nil
}
