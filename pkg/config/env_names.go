package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "GLASS"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "GLASS_APP_ENV"
	EnvPort       = "GLASS_APP_PORT"
	EnvDBDSN      = "GLASS_DB_DSN"
	EnvDBHost     = "GLASS_DB_HOST"
	EnvDBUser     = "GLASS_DB_USER"
	EnvDBName     = "GLASS_DB_NAME"
	EnvRedisURL   = "GLASS_REDIS_URL"
	EnvJWTSecret  = "GLASS_JWT_SECRET"
	EnvJWTIssuer  = "GLASS_JWT_ISSUER"
	EnvJWTExpMins = "GLASS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
