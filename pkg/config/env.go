package config

// EnvPrefix is empty because every variable carries the TIENDITA_ prefix in
// its envconfig tag already.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "TIENDITA_APP_ENV"
	EnvPort     = "TIENDITA_APP_PORT"
	EnvDBDSN    = "TIENDITA_DB_DSN"
	EnvDBHost   = "TIENDITA_DB_HOST"
	EnvDBUser   = "TIENDITA_DB_USER"
	EnvDBName   = "TIENDITA_DB_NAME"
	EnvRedisURL = "TIENDITA_REDIS_URL"

	EnvChatwootBaseURL   = "TIENDITA_CHATWOOT_BASE_URL"
	EnvChatwootAccountID = "TIENDITA_CHATWOOT_ACCOUNT_ID"
	EnvChatwootAPIToken  = "TIENDITA_CHATWOOT_API_TOKEN"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
