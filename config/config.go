// Package config loads application configuration from a yaml file with
// environment-variable overrides, and supports hot reload on change.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	mu     sync.Mutex
	v      *viper.Viper
)

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Protocol string
	Domain   string
	Host     string
	Port     int
	Auth     *Auth
	Data     *Data
	Email    *Email
	Frontend *Frontend
	Logger   *Logger
	Viper    *viper.Viper
}

// IsProd reports whether the server runs in release mode.
func (c *Config) IsProd() bool {
	return c.RunMode == "release" || c.RunMode == "prod" || c.RunMode == "production"
}

func init() {
	v = viper.New()
}

// LoadConfig loads the configuration from the file, applying defaults
// and environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	v.SetEnvPrefix("tasksphere")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy environment names kept for deploy compatibility.
	_ = v.BindEnv("auth.jwt.secret", "TASKSPHERE_AUTH_JWT_SECRET", "SECRET_KEY")
	_ = v.BindEnv("data.database.uri", "TASKSPHERE_DATA_DATABASE_URI", "MONGODB_URI")
	_ = v.BindEnv("email.smtp.username", "TASKSPHERE_EMAIL_SMTP_USERNAME", "GMAIL_USER")
	_ = v.BindEnv("email.smtp.password", "TASKSPHERE_EMAIL_SMTP_PASSWORD", "GMAIL_APP_PASSWORD")
	_ = v.BindEnv("frontend.url", "TASKSPHERE_FRONTEND_URL", "FRONTEND_URL")

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath("/etc/tasksphere")
		v.AddConfigPath("$HOME/.tasksphere")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(ex))
	}

	if err := v.ReadInConfig(); err != nil {
		// Running purely from defaults and environment is supported.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		AppName:  v.GetString("app_name"),
		RunMode:  v.GetString("run_mode"),
		Protocol: v.GetString("server.protocol"),
		Domain:   v.GetString("server.domain"),
		Host:     v.GetString("server.host"),
		Port:     v.GetInt("server.port"),
		Auth:     getAuth(v),
		Data:     getData(v),
		Email:    getEmail(v),
		Frontend: getFrontend(v),
		Logger:   getLogger(v),
		Viper:    v,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	config = cfg
	mu.Unlock()
	return cfg, nil
}

// GetConfig returns the last successfully loaded configuration.
func GetConfig() *Config {
	mu.Lock()
	defer mu.Unlock()
	return config
}

// validate rejects configurations that must not reach production.
func (c *Config) validate() error {
	if c.IsProd() && c.Auth.JWT.Secret == DevJWTSecret {
		return fmt.Errorf("auth.jwt.secret must be configured in %s mode", c.RunMode)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "tasksphere")
	v.SetDefault("run_mode", "debug")
	v.SetDefault("server.protocol", "http")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("auth.jwt.secret", DevJWTSecret)
	v.SetDefault("auth.jwt.expire", 24)
	v.SetDefault("data.database.uri", "mongodb://localhost:27017")
	v.SetDefault("data.database.name", "tasksphere")
	v.SetDefault("email.provider", "smtp")
	v.SetDefault("email.smtp.host", "smtp.gmail.com")
	v.SetDefault("email.smtp.port", "465")
	v.SetDefault("frontend.url", "http://localhost:3000")
	v.SetDefault("logger.level", 4)
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
}

// Reload reloads the configuration from the file.
func Reload(configPath string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to reload config: %w", err)
	}
	return cfg, nil
}

// Watch watches the configuration file and invokes the callback with
// the freshly loaded configuration when it changes.
func Watch(configPath string, callback func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := Reload(configPath)
		if err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
			return
		}
		callback(cfg)
	})
}
