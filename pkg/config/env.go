package config

import "os"

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "FEASTLANE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv     = "FEASTLANE_APP_ENV"
	EnvPort       = "FEASTLANE_APP_PORT"
	EnvDBDSN      = "FEASTLANE_DB_DSN"
	EnvDBHost     = "FEASTLANE_DB_HOST"
	EnvDBUser     = "FEASTLANE_DB_USER"
	EnvDBName     = "FEASTLANE_DB_NAME"
	EnvJWTSecret  = "FEASTLANE_JWT_SECRET"
	EnvJWTIssuer  = "FEASTLANE_JWT_ISSUER"
	EnvJWTExpMins = "FEASTLANE_JWT_EXPIRATION_MINUTES"
	EnvRedisURL   = "FEASTLANE_REDIS_URL"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

// Getenv reads an environment variable outside the envconfig pass, falling
// back when unset or empty.
func Getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
