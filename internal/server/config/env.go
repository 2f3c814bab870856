package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays environment variables onto config. Files in dotenv are
// loaded first; variables already set in the process environment win over
// the file, as godotenv never overrides them.
//
// Recognised variables:
//
//	ADDRESS       HTTP bind address (e.g. ":3000")
//	PORT          port only; used when ADDRESS is unset
//	DATABASE_URL  PostgreSQL DSN
//	JWT_SECRET    token signing secret
//	TOKEN_TTL     token lifetime, Go duration ("24h")
//	APP_ENV       environment; NODE_ENV is accepted as a fallback
//	LOG_LEVEL     debug, info, warn or error
//	BCRYPT_COST   password hashing cost
//
// Malformed TOKEN_TTL or BCRYPT_COST values are ignored.
func parseEnv(config *Config, dotenv ...string) {
	for _, f := range dotenv {
		// a missing .env file is normal outside local development
		_ = godotenv.Load(f)
	}

	if v, ok := os.LookupEnv("ADDRESS"); ok && v != "" {
		config.EndpointAddrHTTP = v
	} else if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}

	lookup(&config.DatabaseDSN, "DATABASE_URL")
	lookup(&config.SecretKey, "JWT_SECRET")
	lookup(&config.LogLevel, "LOG_LEVEL")
	if !lookup(&config.Environment, "APP_ENV") {
		lookup(&config.Environment, "NODE_ENV")
	}

	if v, ok := os.LookupEnv("TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
}

func lookup(dst *string, key string) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
		return true
	}
	return false
}
