package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Base directory for the JSON documents (error sidecar, question catalog).
	DataDir string

	CORSOrigins []string

	// Legacy opaque tokens are the default; signed HS256 tokens are opt-in.
	SignedTokens bool
	HMACSecret   string

	Version string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3001"
	}
	return Config{
		HTTPAddr:     addr,
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),
		DataDir:      envOr("DATA_DIR", "./data"),
		CORSOrigins:  csvOr("CORS_ORIGINS", "http://localhost:3000"),
		SignedTokens: envBool("AUTH_SIGNED_TOKENS", false),
		HMACSecret:   envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		Version:      envOr("APP_VERSION", "1.0.0"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
