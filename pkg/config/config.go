package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace for all PIM settings.
const EnvPrefix = "PIM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Env var names referenced outside struct tags (tests, error messages).
const (
	EnvAppEnv   = "PIM_APP_ENV"
	EnvPort     = "PIM_APP_PORT"
	EnvDBDSN    = "PIM_DB_DSN"
	EnvDBHost   = "PIM_DB_HOST"
	EnvDBUser   = "PIM_DB_USER"
	EnvDBName   = "PIM_DB_NAME"
	EnvRedisURL = "PIM_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Status       StatusConfig
	Variants     VariantsConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"PIM_APP_ENV" required:"true"`
	Port         string `envconfig:"PIM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PIM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PIM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"PIM_DB_DSN"`

	LegacyHost     string `envconfig:"PIM_DB_HOST"`
	LegacyPort     int    `envconfig:"PIM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PIM_DB_USER"`
	LegacyPassword string `envconfig:"PIM_DB_PASSWORD"`
	LegacyName     string `envconfig:"PIM_DB_NAME"`
	LegacySSLMode  string `envconfig:"PIM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PIM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PIM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PIM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PIM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PIM_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"PIM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PIM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PIM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PIM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PIM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StatusConfig tunes the product status aggregation pipeline.
type StatusConfig struct {
	CacheEnabled      bool          `envconfig:"PIM_STATUS_CACHE_ENABLED" default:"true"`
	CacheTTL          time.Duration `envconfig:"PIM_STATUS_CACHE_TTL" default:"5m"`
	ImportGracePeriod time.Duration `envconfig:"PIM_STATUS_IMPORT_GRACE_PERIOD" default:"1h"`
}

// VariantsConfig tunes variant editing sessions.
type VariantsConfig struct {
	SessionTTL    time.Duration `envconfig:"PIM_VARIANT_SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"PIM_VARIANT_SESSION_SWEEP_INTERVAL" default:"1m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PIM_AUTO_MIGRATE" default:"false"`
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
