package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "OWNSHOP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv          = "OWNSHOP_APP_ENV"
	EnvPort            = "OWNSHOP_APP_PORT"
	EnvLogLevel        = "OWNSHOP_LOG_LEVEL"
	EnvDBDSN           = "OWNSHOP_DB_DSN"
	EnvDBDriver        = "OWNSHOP_DB_DRIVER"
	EnvRedisURL        = "OWNSHOP_REDIS_URL"
	EnvJWTSecret       = "OWNSHOP_JWT_SECRET"
	EnvCatalogSource   = "OWNSHOP_CATALOG_SOURCE"
	EnvCatalogDelay    = "OWNSHOP_CATALOG_DELAY"
	EnvSignInDelay     = "OWNSHOP_SIGNIN_DELAY"
	EnvKVBackend       = "OWNSHOP_KV_BACKEND"
	EnvAdminPassword   = "OWNSHOP_ADMIN_PASSWORD"
	EnvUseSQLite       = "OWNSHOP_USE_SQLITE"
	EnvDefaultSQLiteDB = "file:ownshop.db?cache=shared"

	CatalogSourceSeed = "seed"
	CatalogSourceDB   = "db"

	KVBackendMemory = "memory"
	KVBackendRedis  = "redis"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Store        StoreConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OWNSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"OWNSHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"OWNSHOP_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"OWNSHOP_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"OWNSHOP_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"OWNSHOP_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OWNSHOP_DB_DSN"`
	Driver string `envconfig:"OWNSHOP_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"OWNSHOP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"OWNSHOP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"OWNSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OWNSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Enabled reports whether a database should be opened at all. SQLite falls
// back to a local file when no DSN is given.
func (db DBConfig) Enabled() bool {
	return db.DSN != "" || db.IsSQLite()
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

// ResolvedDSN returns the DSN with the SQLite default applied.
func (db DBConfig) ResolvedDSN() string {
	if db.DSN == "" && db.IsSQLite() {
		return EnvDefaultSQLiteDB
	}
	return db.DSN
}

type RedisConfig struct {
	URL          string        `envconfig:"OWNSHOP_REDIS_URL"`
	Address      string        `envconfig:"OWNSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"OWNSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"OWNSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OWNSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OWNSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OWNSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OWNSHOP_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"OWNSHOP_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// JWTConfig signs the device tokens that scope each browser's state.
type JWTConfig struct {
	Secret         string        `envconfig:"OWNSHOP_JWT_SECRET" required:"true"`
	Issuer         string        `envconfig:"OWNSHOP_JWT_ISSUER" default:"ownshop"`
	DeviceTokenTTL time.Duration `envconfig:"OWNSHOP_DEVICE_TOKEN_TTL" default:"720h"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OWNSHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OWNSHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OWNSHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OWNSHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OWNSHOP_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	SignInWindow     time.Duration `envconfig:"OWNSHOP_RATE_LIMIT_SIGNIN_WINDOW" default:"1m"`
	SignInEmailLimit int           `envconfig:"OWNSHOP_RATE_LIMIT_SIGNIN_EMAIL_LIMIT" default:"5"`
	SignInIPLimit    int           `envconfig:"OWNSHOP_RATE_LIMIT_SIGNIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"OWNSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"OWNSHOP_AUTO_MIGRATE" default:"false"`
}

// StoreConfig tunes the per-device application state store.
type StoreConfig struct {
	CatalogSource    string        `envconfig:"OWNSHOP_CATALOG_SOURCE" default:"seed"`
	CatalogDelay     time.Duration `envconfig:"OWNSHOP_CATALOG_DELAY" default:"2500ms"`
	SignInDelay      time.Duration `envconfig:"OWNSHOP_SIGNIN_DELAY" default:"500ms"`
	SentinelPassword string        `envconfig:"OWNSHOP_SENTINEL_PASSWORD" default:"password"`
	AdminPassword    string        `envconfig:"OWNSHOP_ADMIN_PASSWORD"`
	KVBackend        string        `envconfig:"OWNSHOP_KV_BACKEND" default:"memory"`
	BannerTitle      string        `envconfig:"OWNSHOP_BANNER_TITLE" default:"Seasonal hot picks"`
	BannerImageURL   string        `envconfig:"OWNSHOP_BANNER_IMAGE_URL" default:"https://images.unsplash.com/photo-1667409702771-14213044ccc7?w=1080"`
	DeviceIdleTTL    time.Duration `envconfig:"OWNSHOP_DEVICE_IDLE_TTL" default:"24h"`
	JanitorInterval  time.Duration `envconfig:"OWNSHOP_JANITOR_INTERVAL" default:"10m"`
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Store.CatalogSource) {
	case CatalogSourceSeed:
	case CatalogSourceDB:
		if !c.DB.Enabled() {
			return fmt.Errorf("%s=%s requires %s or %s=true", EnvCatalogSource, CatalogSourceDB, EnvDBDSN, EnvUseSQLite)
		}
	default:
		return fmt.Errorf("unknown %s %q", EnvCatalogSource, c.Store.CatalogSource)
	}

	switch strings.ToLower(c.Store.KVBackend) {
	case KVBackendMemory:
	case KVBackendRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("%s=%s requires %s", EnvKVBackend, KVBackendRedis, EnvRedisURL)
		}
	default:
		return fmt.Errorf("unknown %s %q", EnvKVBackend, c.Store.KVBackend)
	}

	if c.Store.CatalogDelay < 0 || c.Store.SignInDelay < 0 {
		return fmt.Errorf("store delays must not be negative")
	}
	if strings.TrimSpace(c.Store.SentinelPassword) == "" {
		return fmt.Errorf("sentinel password must not be empty")
	}
	return nil
}
