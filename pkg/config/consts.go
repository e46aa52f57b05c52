package config

// EnvPrefix is intentionally empty: every variable carries the full
// PAGETURNE_ prefix in its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv  = "PAGETURNE_APP_ENV"
	EnvAppPort = "PAGETURNE_APP_PORT"

	EnvDBDSN  = "PAGETURNE_DB_DSN"
	EnvDBHost = "PAGETURNE_DB_HOST"
	EnvDBUser = "PAGETURNE_DB_USER"
	EnvDBName = "PAGETURNE_DB_NAME"

	EnvRedisURL = "PAGETURNE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
