package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "ATHENA"

var (
	ErrMissingSecret = errors.New("auth.jwt_secret must be set")
	ErrInvalidTTL    = errors.New("session lifetimes must be positive")
	ErrInvalidCost   = errors.New("auth.bcrypt_cost is out of range")
)

type Config struct {
	Env        string           // Env is the current environment: local, development, production.
	HTTP       HTTPConfig       // HTTP holds the API server configuration.
	Monitoring MonitoringConfig // Monitoring holds the metrics and health server configuration.
	Postgres   PostgresConfig   // Postgres holds the database configuration.
	Redis      RedisConfig      // Redis holds the revocation store configuration.
	Auth       AuthConfig       // Auth holds the session and password settings.
}

// HTTPConfig struct holds the configuration of the public API server.
type HTTPConfig struct {
	Address       string        // Address the API listens on, e.g. `:5000`.
	ReadTimeout   time.Duration // ReadTimeout bounds reading a whole request.
	WriteTimeout  time.Duration // WriteTimeout bounds writing a response.
	IdleTimeout   time.Duration // IdleTimeout bounds keep-alive connections.
	AllowedOrigin string        // AllowedOrigin is the browser origin allowed by CORS.
	UploadsDir    string        // UploadsDir is served at /uploads when set.
	CookieSecure  bool          // CookieSecure marks the session cookie as Secure.
}

// MonitoringConfig struct holds the port of the metrics and health server.
type MonitoringConfig struct {
	Port int
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Dbname   string // Dbname is the name of the database.
}

// RedisConfig struct holds the connection settings of the session revocation store.
// An empty Address disables revocation.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TLS      bool
}

// AuthConfig struct holds session token and password hashing settings.
type AuthConfig struct {
	JWTSecret             string        // JWTSecret signs session tokens.
	RegisterTTL           time.Duration // RegisterTTL is the lifetime of tokens issued on registration.
	LoginTTL              time.Duration // LoginTTL is the lifetime of tokens issued on login.
	BcryptCost            int           // BcryptCost is the work factor of password hashes.
	ProtectEmployeeRoutes bool          // ProtectEmployeeRoutes requires a session on employee routes.
}

// Load reads the configuration from an optional `.env` file, an optional YAML file
// named by CONFIG_PATH and ATHENA_* environment variables, in increasing priority.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	vpr := viper.New()
	setDefaults(vpr)

	vpr.SetEnvPrefix(EnvPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s: %w", configPath, err)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Address:       vpr.GetString("http.address"),
			ReadTimeout:   vpr.GetDuration("http.read_timeout"),
			WriteTimeout:  vpr.GetDuration("http.write_timeout"),
			IdleTimeout:   vpr.GetDuration("http.idle_timeout"),
			AllowedOrigin: vpr.GetString("http.allowed_origin"),
			UploadsDir:    vpr.GetString("http.uploads_dir"),
			CookieSecure:  vpr.GetBool("http.cookie_secure"),
		},
		Monitoring: MonitoringConfig{
			Port: vpr.GetInt("monitoring.port"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
		Redis: RedisConfig{
			Address:  vpr.GetString("redis.address"),
			Password: vpr.GetString("redis.password"),
			DB:       vpr.GetInt("redis.db"),
			TLS:      vpr.GetBool("redis.tls"),
		},
		Auth: AuthConfig{
			JWTSecret:             vpr.GetString("auth.jwt_secret"),
			RegisterTTL:           vpr.GetDuration("auth.register_ttl"),
			LoginTTL:              vpr.GetDuration("auth.login_ttl"),
			BcryptCost:            vpr.GetInt("auth.bcrypt_cost"),
			ProtectEmployeeRoutes: vpr.GetBool("auth.protect_employee_routes"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad loads the configuration and panics if it is incomplete or invalid.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.address", ":5000")
	vpr.SetDefault("http.read_timeout", 10*time.Second)
	vpr.SetDefault("http.write_timeout", 10*time.Second)
	vpr.SetDefault("http.idle_timeout", time.Minute)
	vpr.SetDefault("http.allowed_origin", "http://localhost:3000")
	vpr.SetDefault("http.uploads_dir", "")
	vpr.SetDefault("http.cookie_secure", false)
	vpr.SetDefault("monitoring.port", 8080)
	vpr.SetDefault("postgres.host", "localhost")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("postgres.user", "")
	vpr.SetDefault("postgres.password", "")
	vpr.SetDefault("postgres.db_name", "")
	vpr.SetDefault("redis.address", "")
	vpr.SetDefault("redis.password", "")
	vpr.SetDefault("redis.db", 0)
	vpr.SetDefault("redis.tls", false)
	vpr.SetDefault("auth.jwt_secret", "")
	vpr.SetDefault("auth.register_ttl", time.Hour)
	vpr.SetDefault("auth.login_ttl", 24*time.Hour)
	vpr.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	vpr.SetDefault("auth.protect_employee_routes", true)
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.Auth.RegisterTTL <= 0 || c.Auth.LoginTTL <= 0 {
		return ErrInvalidTTL
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %d", ErrInvalidCost, c.Auth.BcryptCost)
	}

	return nil
}
