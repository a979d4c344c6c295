// Package config reads the rolepanel process configuration from the environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort          = 3000
	defaultSessionMaxAge = 24 * 60 // minutes
	defaultAdminLogin    = "admin"
	defaultAdminPassword = "admin"
)

// ErrMissingSecret is returned by Load when no session secret is configured
// outside debug mode.
var ErrMissingSecret = errors.New("ROLEPANEL_SESSION_SECRET must be set")

// Config is the full set of settings the server is started with.
type Config struct {
	Listen        string
	Port          int
	WebDomain     string // only Host answered when set
	SessionSecret string
	SessionMaxAge int // minutes
	AdminLogin    string
	AdminPassword string

	Database DatabaseConfig
	Redis    RedisConfig
}

// DatabaseConfig holds the SQLite settings.
type DatabaseConfig struct {
	Path string
}

// RedisConfig holds the optional session backend settings. An empty Addr
// keeps sessions in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

// LoadEnvFile loads a .env file into the environment if one exists.
// Variables already set are not overridden.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// Load builds a Config from ROLEPANEL_* variables.
func Load() (*Config, error) {
	c := &Config{
		Listen:        os.Getenv("ROLEPANEL_LISTEN"),
		Port:          getInt("ROLEPANEL_PORT", defaultPort),
		WebDomain:     os.Getenv("ROLEPANEL_WEB_DOMAIN"),
		SessionSecret: os.Getenv("ROLEPANEL_SESSION_SECRET"),
		SessionMaxAge: getInt("ROLEPANEL_SESSION_MAX_AGE", defaultSessionMaxAge),
		AdminLogin:    getString("ROLEPANEL_ADMIN_LOGIN", defaultAdminLogin),
		AdminPassword: getString("ROLEPANEL_ADMIN_PASSWORD", defaultAdminPassword),
		Database: DatabaseConfig{
			Path: GetDBPath(),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("ROLEPANEL_REDIS_ADDR"),
			Password: os.Getenv("ROLEPANEL_REDIS_PASSWORD"),
			DB:       getInt("ROLEPANEL_REDIS_DB", 0),
		},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.SessionSecret == "" && !IsDebug() {
		return ErrMissingSecret
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be positive, got %d", c.SessionMaxAge)
	}
	return c.Database.Validate()
}

// UsesDefaultAdminPassword reports whether the bootstrap admin would be created
// with the well-known password.
func (c *Config) UsesDefaultAdminPassword() bool {
	return c.AdminPassword == defaultAdminPassword
}

func (c *DatabaseConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("SQLite path cannot be empty")
	}
	return nil
}

// EnsureDirectoryExists creates the folder the SQLite file lives in.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	return os.MkdirAll(filepath.Dir(c.Path), 0o755)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("ROLEPANEL_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("ROLEPANEL_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("ROLEPANEL_DB_FOLDER")
	if dbFolderPath != "" {
		return dbFolderPath
	}
	if IsDebug() {
		return "db"
	}
	return "/etc/rolepanel"
}

func GetDBPath() string {
	return filepath.Join(GetDBFolderPath(), GetName()+".db")
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("ROLEPANEL_LOG_FOLDER")
	if logFolderPath != "" {
		return logFolderPath
	}
	if IsDebug() {
		return "log"
	}
	return "/var/log"
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
