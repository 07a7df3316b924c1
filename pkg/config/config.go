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
	Password PasswordConfig
	Stripe    StripeConfig
	Checkout  CheckoutConfig
	RateLimit RateLimitConfig
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
	Env          string `envconfig:"FEASTLANE_APP_ENV" required:"true"`
	Port         string `envconfig:"FEASTLANE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FEASTLANE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FEASTLANE_LOG_WARN_STACK" default:"false"`
	FrontendURL  string `envconfig:"FEASTLANE_FRONTEND_URL" default:"http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FEASTLANE_DB_DSN"`
	Driver string `envconfig:"FEASTLANE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FEASTLANE_DB_HOST"`
	Port     int    `envconfig:"FEASTLANE_DB_PORT" default:"5432"`
	User     string `envconfig:"FEASTLANE_DB_USER"`
	Password string `envconfig:"FEASTLANE_DB_PASSWORD"`
	Name     string `envconfig:"FEASTLANE_DB_NAME"`
	SSLMode  string `envconfig:"FEASTLANE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FEASTLANE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FEASTLANE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FEASTLANE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FEASTLANE_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"FEASTLANE_AUTO_MIGRATE" default:"false"`
}

// UseSQLite reports whether the SQLite driver should back the store.
func (db DBConfig) UseSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"FEASTLANE_REDIS_URL"`
	Address      string        `envconfig:"FEASTLANE_REDIS_ADDR"`
	Password     string        `envconfig:"FEASTLANE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FEASTLANE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FEASTLANE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FEASTLANE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FEASTLANE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FEASTLANE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FEASTLANE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FEASTLANE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FEASTLANE_JWT_ISSUER" default:"feastlane"`
	ExpirationMinutes int    `envconfig:"FEASTLANE_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FEASTLANE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FEASTLANE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FEASTLANE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FEASTLANE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FEASTLANE_ARGON_KEY_LEN" default:"32"`
}

type StripeConfig struct {
	APIKey string `envconfig:"FEASTLANE_STRIPE_API_KEY"`
	Secret string `envconfig:"FEASTLANE_STRIPE_WEBHOOK_SECRET"`
	Env    string `envconfig:"FEASTLANE_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

// CheckoutConfig holds the policy points of the order/payment workflow.
type CheckoutConfig struct {
	Currency string `envconfig:"FEASTLANE_CHECKOUT_CURRENCY" default:"inr"`

	// CODMarkPaid immediately transitions cash-on-delivery orders to paid.
	// Default is off: COD settlement happens out of band at delivery.
	CODMarkPaid bool `envconfig:"FEASTLANE_CHECKOUT_COD_MARK_PAID" default:"false"`

	// TrustClientConfirm lets POST /order/confirm-payment mutate order state
	// on the client's word. When false the endpoint is a read-only status
	// poll and the webhook is the sole source of truth.
	TrustClientConfirm bool `envconfig:"FEASTLANE_CHECKOUT_TRUST_CLIENT_CONFIRM" default:"false"`
}

// RateLimitConfig throttles the credential endpoints. A zero window or both
// limits at zero disables the limiter.
type RateLimitConfig struct {
	AuthWindow     time.Duration `envconfig:"FEASTLANE_AUTH_RATE_LIMIT_WINDOW" default:"1m"`
	AuthIPLimit    int           `envconfig:"FEASTLANE_AUTH_RATE_LIMIT_IP" default:"30"`
	AuthEmailLimit int           `envconfig:"FEASTLANE_AUTH_RATE_LIMIT_EMAIL" default:"10"`
}

func (r RateLimitConfig) Enabled() bool {
	return r.AuthWindow > 0 && (r.AuthIPLimit > 0 || r.AuthEmailLimit > 0)
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.UseSQLite() {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
