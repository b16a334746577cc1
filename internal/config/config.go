package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config aggregates application configuration values. It is read once at
// startup and treated as immutable afterwards.
type Config struct {
	GraphURI      string `env:"NEO4J_URI"`
	GraphUser     string `env:"NEO4J_USER"`
	GraphPassword string `env:"NEO4J_PASS"`
	GraphDatabase string `env:"NEO4J_DATABASE"`

	APIKey string `env:"API_KEY"`

	Host              string        `env:"SERVER_HOST,default=0.0.0.0"`
	Port              int           `env:"SERVER_PORT,default=8080"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT,default=10s"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT,default=15s"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT,default=60s"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	AllowedOriginsCSV string        `env:"SERVER_ALLOWED_ORIGINS"`
	AllowCredentials  bool          `env:"SERVER_ALLOW_CREDENTIALS,default=true"`

	LogLevel         string `env:"LOG_LEVEL,default=info"`
	LogFormat        string `env:"LOG_FORMAT,default=text"`
	LogIncludeCaller bool   `env:"LOG_INCLUDE_CALLER,default=false"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	AllowedOrigins   []string
	AllowCredentials bool // listed origins only, never "*"
}

// GraphConfig describes connectivity to Neo4j.
type GraphConfig struct {
	URI      string
	Database string
	Username string
	Password string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

var (
	// ErrMissingGraphURI is returned when NEO4J_URI is unset.
	ErrMissingGraphURI = errors.New("NEO4J_URI was not set")
	// ErrMissingSecret is returned when API_KEY is unset.
	ErrMissingSecret = errors.New("API_KEY was not set")
)

// Load reads an optional .env file, then the environment, applying defaults.
func Load() (Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()
	return FromEnviron()
}

// FromEnviron builds a Config from the current process environment only.
func FromEnviron() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values the service cannot start without.
func (c Config) Validate() error {
	if c.GraphURI == "" {
		return ErrMissingGraphURI
	}
	if c.APIKey == "" {
		return ErrMissingSecret
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	return nil
}

// HTTP returns the server settings.
func (c Config) HTTP() HTTPConfig {
	return HTTPConfig{
		Host:             c.Host,
		Port:             c.Port,
		ReadTimeout:      c.ReadTimeout,
		WriteTimeout:     c.WriteTimeout,
		IdleTimeout:      c.IdleTimeout,
		ShutdownTimeout:  c.ShutdownTimeout,
		AllowedOrigins:   parseAllowedOrigins(c.AllowedOriginsCSV),
		AllowCredentials: c.AllowCredentials,
	}
}

// Graph returns the database settings.
func (c Config) Graph() GraphConfig {
	return GraphConfig{
		URI:      c.GraphURI,
		Database: c.GraphDatabase,
		Username: c.GraphUser,
		Password: c.GraphPassword,
	}
}

// Logging returns the logger settings.
func (c Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level:         c.LogLevel,
		Format:        c.LogFormat,
		IncludeCaller: c.LogIncludeCaller,
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
