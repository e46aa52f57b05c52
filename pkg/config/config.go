package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Shipping ShippingConfig
	Checkout CheckoutConfig
	Features FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PAGETURNE_APP_ENV" required:"true"`
	Port         string `envconfig:"PAGETURNE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PAGETURNE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PAGETURNE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PAGETURNE_DB_DSN"`
	Driver string `envconfig:"PAGETURNE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PAGETURNE_DB_HOST"`
	LegacyPort     int    `envconfig:"PAGETURNE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PAGETURNE_DB_USER"`
	LegacyPassword string `envconfig:"PAGETURNE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PAGETURNE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PAGETURNE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PAGETURNE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PAGETURNE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PAGETURNE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PAGETURNE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PAGETURNE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PAGETURNE_REDIS_ADDR"`
	Password     string        `envconfig:"PAGETURNE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PAGETURNE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PAGETURNE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PAGETURNE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PAGETURNE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PAGETURNE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PAGETURNE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"PAGETURNE_JWT_SECRET"`
	Issuer string `envconfig:"PAGETURNE_JWT_ISSUER" default:"pageturne"`
}

// ShippingConfig carries the storefront shipping policy in cents.
type ShippingConfig struct {
	FreeThresholdCents int `envconfig:"PAGETURNE_SHIPPING_FREE_THRESHOLD_CENTS" default:"5000"`
	FlatRateCents      int `envconfig:"PAGETURNE_SHIPPING_FLAT_RATE_CENTS" default:"590"`
}

// CheckoutConfig controls the in-transit checkout storage.
type CheckoutConfig struct {
	SessionTTL time.Duration `envconfig:"PAGETURNE_CHECKOUT_SESSION_TTL" default:"30m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PAGETURNE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PAGETURNE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
