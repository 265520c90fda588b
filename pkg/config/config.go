package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	DB       DBConfig
	Password PasswordConfig
	Seed     SeedConfig
	Coupon   CouponConfig
	Orders   OrdersConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations envconfig cannot express with tags alone.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis:
	case BackendSQL:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStorageBackend, BackendSQL)
		}
		switch c.DB.Driver {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageBackend, c.Storage.Backend)
	}
	if c.Coupon.MinPercent < 0 || c.Coupon.MaxPercent > 100 || c.Coupon.MinPercent > c.Coupon.MaxPercent {
		return fmt.Errorf("invalid coupon percent range [%d, %d]", c.Coupon.MinPercent, c.Coupon.MaxPercent)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"MALL_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"MALL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MALL_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"MALL_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Backend string `envconfig:"MALL_STORAGE_BACKEND" default:"memory"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MALL_REDIS_URL"`
	Address      string        `envconfig:"MALL_REDIS_ADDR"`
	Password     string        `envconfig:"MALL_REDIS_PASSWORD"`
	DB           int           `envconfig:"MALL_REDIS_DB" default:"0"`
	Namespace    string        `envconfig:"MALL_REDIS_NAMESPACE" default:"mall"`
	PoolSize     int           `envconfig:"MALL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MALL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MALL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MALL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MALL_REDIS_WRITE_TIMEOUT" default:"5s"`
	ScanCount    int64         `envconfig:"MALL_REDIS_SCAN_COUNT" default:"200"`
}

type DBConfig struct {
	Driver      string `envconfig:"MALL_DB_DRIVER" default:"sqlite"`
	DSN         string `envconfig:"MALL_DB_DSN"`
	AutoMigrate bool   `envconfig:"MALL_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"MALL_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MALL_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"MALL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MALL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MALL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MALL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MALL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MALL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MALL_ARGON_KEY_LEN" default:"32"`
}

// SeedConfig holds the first-run admin account. The defaults are the
// documented bootstrap credentials and should be overridden outside dev.
type SeedConfig struct {
	AdminEmail  string `envconfig:"MALL_SEED_ADMIN_EMAIL" default:"admin@mall.com"`
	AdminSecret string `envconfig:"MALL_SEED_ADMIN_SECRET" default:"admin123"`
	AdminName   string `envconfig:"MALL_SEED_ADMIN_NAME" default:"管理员"`
}

type CouponConfig struct {
	MinPercent int `envconfig:"MALL_COUPON_MIN_PERCENT" default:"3"`
	MaxPercent int `envconfig:"MALL_COUPON_MAX_PERCENT" default:"15"`
}

type OrdersConfig struct {
	DefaultPaymentMethod string `envconfig:"MALL_ORDERS_DEFAULT_PAYMENT_METHOD" default:"微信支付"`
	RecentWindow         int    `envconfig:"MALL_ORDERS_RECENT_WINDOW" default:"5"`
}
