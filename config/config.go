package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const VERSION = "0.4"

type Config struct {
	Database     DatabaseConfig
	Loader       LoaderConfig
	RootEmail    string
	RootPassword string
	Environment  string
	LogLevel     string
	Version      string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LoaderConfig tunes the telemetry CSV loader.
type LoaderConfig struct {
	ChunkSize              int
	InactivityThresholdMin int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "opsight")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Loader defaults match the reference capture pipeline
	v.SetDefault("LOAD_CHUNK_SIZE", 50000)
	v.SetDefault("LOAD_INACTIVITY_THRESHOLD_MIN", 10)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	database := DatabaseConfig{
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetInt("DB_PORT"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		DBName:   v.GetString("DB_NAME"),
		SSLMode:  v.GetString("DB_SSLMODE"),
	}

	// DATABASE_URL wins over the discrete DB_* variables when set.
	// Components the URL omits keep their DB_* values.
	if rawURL := v.GetString("DATABASE_URL"); rawURL != "" {
		parsed, err := ParseDatabaseURL(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		database = database.merge(parsed)
	}

	config := &Config{
		Database: database,
		Loader: LoaderConfig{
			ChunkSize:              v.GetInt("LOAD_CHUNK_SIZE"),
			InactivityThresholdMin: v.GetInt("LOAD_INACTIVITY_THRESHOLD_MIN"),
		},
		RootEmail:    v.GetString("ROOT_EMAIL"),
		RootPassword: v.GetString("ROOT_PASSWORD"),
		Environment:  v.GetString("ENVIRONMENT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		Version:      v.GetString("VERSION"),
	}

	if config.Loader.ChunkSize <= 0 {
		return nil, fmt.Errorf("LOAD_CHUNK_SIZE must be positive, got %d", config.Loader.ChunkSize)
	}

	return config, nil
}

// ParseDatabaseURL parses a PostgreSQL connection URL into its components.
// SQLAlchemy-style dialect URLs (postgresql+psycopg2://, postgresql+psycopg://)
// are accepted: the +driver suffix carries no meaning here and is stripped.
// Components absent from the URL are left at their zero values.
func ParseDatabaseURL(rawURL string) (DatabaseConfig, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("error parsing URL: %w", err)
	}

	scheme := u.Scheme
	if i := strings.Index(scheme, "+"); i >= 0 {
		scheme = scheme[:i]
	}
	if scheme != "postgres" && scheme != "postgresql" {
		return DatabaseConfig{}, fmt.Errorf("unsupported scheme %q, expected postgres or postgresql", u.Scheme)
	}

	parsed := DatabaseConfig{
		Host:    u.Hostname(),
		DBName:  strings.TrimPrefix(u.Path, "/"),
		SSLMode: u.Query().Get("sslmode"),
	}

	if u.User != nil {
		parsed.User = u.User.Username()
		if password, ok := u.User.Password(); ok {
			parsed.Password = password
		}
	}

	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return DatabaseConfig{}, fmt.Errorf("invalid port %q: %w", portStr, err)
		}
		parsed.Port = port
	}

	return parsed, nil
}

// merge overlays the non-zero fields of other onto c.
func (c DatabaseConfig) merge(other DatabaseConfig) DatabaseConfig {
	if other.Host != "" {
		c.Host = other.Host
	}
	if other.Port != 0 {
		c.Port = other.Port
	}
	if other.User != "" {
		c.User = other.User
	}
	if other.Password != "" {
		c.Password = other.Password
	}
	if other.DBName != "" {
		c.DBName = other.DBName
	}
	if other.SSLMode != "" {
		c.SSLMode = other.SSLMode
	}
	return c
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
