package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Env    string
	DB     DatabaseConfig
	Logger LoggerConfig
	Cache  CacheConfig
	Redis  RedisConfig
}

// DatabaseConfig holds configuration for the database
type DatabaseConfig struct {
	Driver   string `mapstructure:"DB_DRIVER"`
	Host     string `mapstructure:"DB_HOST"`
	Port     string `mapstructure:"DB_PORT"`
	User     string `mapstructure:"DB_USER"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME"` // database name, or file path for sqlite
	SSLMode  string `mapstructure:"DB_SSLMODE"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	MaxSizeMB        int     `mapstructure:"LOG_MAX_SIZE_MB"`
	MaxBackups       int     `mapstructure:"LOG_MAX_BACKUPS"`
	MaxAgeDays       int     `mapstructure:"LOG_MAX_AGE_DAYS"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// CacheConfig toggles the Redis-backed listing cache.
type CacheConfig struct {
	Enabled bool `mapstructure:"CACHE_ENABLED"`
}

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	CacheTTL int    `mapstructure:"REDIS_CACHE_TTL"` // seconds
}

// LoadConfig reads configuration from an app.env file in path, overlaid by
// environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Set defaults first
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	// APP_ENV may come from app.env, so these defaults wait for the file
	setEnvironmentDefaults(v)

	var config Config

	config.Env = v.GetString("APP_ENV")

	config.DB.Driver = strings.ToLower(v.GetString("DB_DRIVER"))
	config.DB.Host = v.GetString("DB_HOST")
	config.DB.Port = v.GetString("DB_PORT")
	config.DB.User = v.GetString("DB_USER")
	config.DB.Password = v.GetString("DB_PASSWORD")
	config.DB.Name = v.GetString("DB_NAME")
	config.DB.SSLMode = v.GetString("DB_SSLMODE")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = v.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.MaxSizeMB = v.GetInt("LOG_MAX_SIZE_MB")
	config.Logger.MaxBackups = v.GetInt("LOG_MAX_BACKUPS")
	config.Logger.MaxAgeDays = v.GetInt("LOG_MAX_AGE_DAYS")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	config.Cache.Enabled = v.GetBool("CACHE_ENABLED")

	config.Redis.Host = v.GetString("REDIS_HOST")
	config.Redis.Port = v.GetString("REDIS_PORT")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.CacheTTL = v.GetInt("REDIS_CACHE_TTL")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "egrocery")
	v.SetDefault("DB_SSLMODE", "disable")

	// The menu owns stdout, so logs go to a rotated file unless told otherwise.
	v.SetDefault("LOG_OUTPUT_PATH", "user-crud-console.log")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("SERVICE_NAME", "user-crud-console")
	v.SetDefault("SERVICE_VERSION", "1.0.0")

	v.SetDefault("CACHE_ENABLED", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CACHE_TTL", 30)
}

// setEnvironmentDefaults picks logger defaults for the resolved APP_ENV.
func setEnvironmentDefaults(v *viper.Viper) {
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
}

// Validate checks the configuration before any connection is attempted.
func (c *Config) Validate() error {
	var errs []error

	switch c.DB.Driver {
	case DriverMySQL, DriverPostgres:
		if _, err := strconv.Atoi(c.DB.Port); err != nil {
			errs = append(errs, fmt.Errorf("DB_PORT must be numeric, got %q", c.DB.Port))
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be one of %s, %s, %s, got %q",
			DriverMySQL, DriverPostgres, DriverSQLite, c.DB.Driver))
	}

	if strings.TrimSpace(c.DB.Name) == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}

	if c.Cache.Enabled {
		if c.Redis.CacheTTL <= 0 {
			errs = append(errs, fmt.Errorf("REDIS_CACHE_TTL must be positive, got %d", c.Redis.CacheTTL))
		}
		if _, err := strconv.Atoi(c.Redis.Port); err != nil {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be numeric, got %q", c.Redis.Port))
		}
	}

	return errors.Join(errs...)
}

// DSN returns the data source name for the configured driver.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   net.JoinHostPort(c.Host, c.Port),
			Path:   "/" + c.Name,
		}
		if c.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
		}
		return u.String()
	case DriverSQLite:
		return c.Name
	default:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, c.Port)
		mc.DBName = c.Name
		mc.ParseTime = true
		// Report matched rows, so an update that keeps the same email still
		// counts as found.
		mc.ClientFoundRows = true
		return mc.FormatDSN()
	}
}

// Addr returns the host:port address of the Redis server.
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
