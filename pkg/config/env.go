package config

// EnvPrefix is handed to envconfig; every field also pins its full variable
// name through the envconfig tag.
const EnvPrefix = "MALL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQL    = "sql"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	EnvAppEnv             = "MALL_APP_ENV"
	EnvLogLevel           = "MALL_LOG_LEVEL"
	EnvStorageBackend     = "MALL_STORAGE_BACKEND"
	EnvRedisURL           = "MALL_REDIS_URL"
	EnvRedisNamespace     = "MALL_REDIS_NAMESPACE"
	EnvDBDriver           = "MALL_DB_DRIVER"
	EnvDBDSN              = "MALL_DB_DSN"
	EnvSeedAdminEmail     = "MALL_SEED_ADMIN_EMAIL"
	EnvCouponMinPercent   = "MALL_COUPON_MIN_PERCENT"
	EnvCouponMaxPercent   = "MALL_COUPON_MAX_PERCENT"
	EnvOrdersRecentWindow = "MALL_ORDERS_RECENT_WINDOW"
)
