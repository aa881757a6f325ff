package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Session store kinds accepted in session.store
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
	SessionStoreSQLite = "sqlite"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	Handoff HandoffConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// AllowOrigins enables CORS for the listed origins; empty disables it.
	AllowOrigins string
}

// BackendConfig points at the quiz-generation API. BaseURL is the single
// deploy-time value the client needs.
type BackendConfig struct {
	BaseURL string
}

type SessionConfig struct {
	Store        string
	CookieName   string
	CookieMaxAge int // seconds
	CookieSecure bool
}

// HandoffConfig configures signing of navigation state passed between views.
type HandoffConfig struct {
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SQLiteConfig struct {
	Path        string
	AutoMigrate bool
}

type LoggerConfig struct {
	Level string
	Env   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("server.idle_timeout", 20)
	v.SetDefault("server.allow_origins", "")

	v.SetDefault("backend.base_url", "https://eduquiz-e8ng.onrender.com")

	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.cookie_name", "eduquiz_sid")
	v.SetDefault("session.cookie_max_age", 365*24*60*60)
	v.SetDefault("session.cookie_secure", false)

	v.SetDefault("handoff.ttl", 7200)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("sqlite.path", "eduquiz.db")
	v.SetDefault("sqlite.auto_migrate", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

// LoadConfig reads config.yaml from the given directories (or "." and
// "./configs" when none are given), then applies environment overrides such
// as BACKEND_BASE_URL or HANDOFF_SECRET. A missing config file is not an error.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			IdleTimeout:  time.Duration(v.GetInt("server.idle_timeout")) * time.Second,
			AllowOrigins: v.GetString("server.allow_origins"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(v.GetString("backend.base_url"), "/"),
		},
		Session: SessionConfig{
			Store:        strings.ToLower(v.GetString("session.store")),
			CookieName:   v.GetString("session.cookie_name"),
			CookieMaxAge: v.GetInt("session.cookie_max_age"),
			CookieSecure: v.GetBool("session.cookie_secure"),
		},
		Handoff: HandoffConfig{
			Secret: v.GetString("handoff.secret"),
			TTL:    time.Duration(v.GetInt("handoff.ttl")) * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		SQLite: SQLiteConfig{
			Path:        v.GetString("sqlite.path"),
			AutoMigrate: v.GetBool("sqlite.auto_migrate"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	// ENV is what the deploy scripts already export
	if env := os.Getenv("ENV"); env != "" {
		cfg.Logger.Env = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url must be set")
	}
	if len(c.Handoff.Secret) < 32 {
		return errors.New("handoff.secret must be at least 32 bytes long")
	}
	if c.Handoff.TTL <= 0 {
		return errors.New("handoff.ttl must be positive")
	}
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis, SessionStoreSQLite:
	default:
		return fmt.Errorf("unsupported session.store %q", c.Session.Store)
	}
	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name must be set")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
