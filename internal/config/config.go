package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the imuws commands
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Client configuration
	Client ClientConfig

	// Development server configuration
	Server ServerConfig

	// Redis configuration
	Redis RedisConfig
}

// ClientConfig holds settings for the upload and ping commands
type ClientConfig struct {
	Host   string `env:"IMUWS_HOST" envDefault:"personal-site-oi5a.onrender.com"`
	Scheme string `env:"IMUWS_SCHEME" envDefault:"wss"`
	IMUID  string `env:"IMU_ID" envDefault:"my_imu_id"`

	PingImage string `env:"PING_IMAGE" envDefault:"placeholder"`

	// Zero disables the handshake timeout
	HandshakeTimeout time.Duration `env:"IMUWS_HANDSHAKE_TIMEOUT" envDefault:"0s"`

	// Optional node exporter textfile written after each run
	MetricsFile string `env:"IMUWS_METRICS_FILE"`
}

// ServerConfig holds settings for the development server
type ServerConfig struct {
	HTTPPort        int           `env:"IMUWS_HTTP_PORT" envDefault:"8080"`
	PingGreeting    string        `env:"IMUWS_PING_GREETING" envDefault:"connected"`
	RecentReadings  int           `env:"IMUWS_RECENT_READINGS" envDefault:"100"`
	ShutdownTimeout time.Duration `env:"IMUWS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// RedisConfig holds Redis connection configuration. An empty Addr keeps
// readings in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	StreamMaxLen int64         `env:"REDIS_STREAM_MAXLEN" envDefault:"10000"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Load reads configuration from environment variables and validates every section
func Load() (*Config, error) {
	return load((*Config).Validate)
}

// LoadClient reads configuration for the upload and ping commands. Server
// settings are parsed but not validated.
func LoadClient() (*Config, error) {
	return load((*Config).ValidateClient)
}

// LoadServer reads configuration for the development server. Client
// settings are parsed but not validated.
func LoadServer() (*Config, error) {
	return load((*Config).ValidateServer)
}

func load(validate func(*Config) error) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the whole configuration is valid
func (c *Config) Validate() error {
	if err := c.ValidateClient(); err != nil {
		return err
	}
	return c.ValidateServer()
}

// ValidateClient checks the settings used by the client commands
func (c *Config) ValidateClient() error {
	if c.Client.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Client.Scheme != "ws" && c.Client.Scheme != "wss" {
		return fmt.Errorf("invalid scheme: %s (must be ws or wss)", c.Client.Scheme)
	}
	if c.Client.IMUID == "" {
		return fmt.Errorf("IMU id is required")
	}
	if c.Client.HandshakeTimeout < 0 {
		return fmt.Errorf("handshake timeout must not be negative")
	}

	return c.validateLogLevel()
}

// ValidateServer checks the settings used by the development server
func (c *Config) ValidateServer() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.RecentReadings < 1 {
		return fmt.Errorf("recent readings must be at least 1")
	}

	return c.validateLogLevel()
}

func (c *Config) validateLogLevel() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the development server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.Server.HTTPPort)
}
