// Package config loads server, cache, legacy-calculator and tracing
// settings once at startup from a YAML file overlaid with environment
// variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// =============================================================================
// lucuma-itc — Configuration with Environment Overrides
// =============================================================================

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Legacy  LegacyConfig  `yaml:"legacy"`
	Cache   CacheConfig   `yaml:"cache"`
	Tracing TracingConfig `yaml:"tracing"`
}

type ServerConfig struct {
	Port             string   `yaml:"port" validate:"numeric"`
	Env              string   `yaml:"env"`
	Version          string   `yaml:"version"`
	ReadTimeoutSec   int      `yaml:"read_timeout_sec" validate:"gt=0"`
	WriteTimeoutSec  int      `yaml:"write_timeout_sec" validate:"gt=0"`
	IdleTimeoutSec   int      `yaml:"idle_timeout_sec" validate:"gt=0"`
	ShutdownTimeout  int      `yaml:"shutdown_timeout_sec" validate:"gt=0"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins" validate:"min=1"`
}

// LegacyConfig points at the legacy numeric calculator. Exactly one of
// Command (stdio subprocess) or GRPCAddr (remote transport) is normally
// set; Command wins if both are present.
type LegacyConfig struct {
	Command        string `yaml:"command"`
	GRPCAddr       string `yaml:"grpc_addr"`
	TimeoutSec     int    `yaml:"timeout_sec" validate:"gt=0"`
	MaxIterations  int    `yaml:"max_iterations" validate:"gt=0"`
	InitialProbeTT int    `yaml:"initial_probe_time_sec" validate:"gt=0"`
}

type CacheConfig struct {
	RedisEnabled bool   `yaml:"redis_enabled"`
	RedisAddr    string `yaml:"redis_addr" validate:"required"`
	RedisPass    string `yaml:"redis_password"`
	RedisDB      int    `yaml:"redis_db" validate:"gte=0"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	ServiceName string  `yaml:"service_name" validate:"required"`
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`
}

// =============================================================================
// Singleton Pattern with Environment Overrides
// =============================================================================

var (
	instance *Config
	once     sync.Once
)

// Get returns the singleton config instance, loading it on first use.
func Get() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			slog.Debug("config: no .env file loaded", "error", err)
		}

		cfg, err := LoadConfig(getEnv("ITC_CONFIG_PATH", "config.yaml"))
		if err != nil {
			slog.Warn("config: failed to load config file (using defaults)", "error", err)
		}
		if cfg == nil {
			cfg = &Config{}
		}
		cfg.applyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			slog.Warn("config: validation problems", "error", err)
		}
		instance = cfg
	})
	return instance
}

// Validate checks the loaded config against the struct tags above,
// after defaults have been applied — it surfaces configuration
// mistakes (a negative timeout, an empty required field) without
// stopping startup, since every field already carries a workable
// default.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// LoadConfig loads config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	c.Server.Port = getEnv("ITC_SERVER_PORT", c.Server.Port)
	c.Server.Env = getEnv("ITC_ENV", c.Server.Env)
	c.Server.Version = getEnv("ITC_SERVER_VERSION", c.Server.Version)

	if v := getEnvInt("ITC_SERVER_READ_TIMEOUT_SEC", 0); v > 0 {
		c.Server.ReadTimeoutSec = v
	}
	if v := getEnvInt("ITC_SERVER_WRITE_TIMEOUT_SEC", 0); v > 0 {
		c.Server.WriteTimeoutSec = v
	}
	if v := getEnvInt("ITC_SERVER_IDLE_TIMEOUT_SEC", 0); v > 0 {
		c.Server.IdleTimeoutSec = v
	}
	if v := getEnvInt("ITC_SERVER_SHUTDOWN_TIMEOUT_SEC", 0); v > 0 {
		c.Server.ShutdownTimeout = v
	}

	c.Legacy.Command = getEnv("ITC_LEGACY_CALCULATOR_CMD", c.Legacy.Command)
	c.Legacy.GRPCAddr = getEnv("ITC_LEGACY_GRPC_ADDR", c.Legacy.GRPCAddr)
	if v := getEnvInt("ITC_LEGACY_TIMEOUT_SEC", 0); v > 0 {
		c.Legacy.TimeoutSec = v
	}
	if v := getEnvInt("ITC_LEGACY_MAX_ITERATIONS", 0); v > 0 {
		c.Legacy.MaxIterations = v
	}

	c.Cache.RedisEnabled = getEnvBool("ITC_CACHE_REDIS_ENABLED", c.Cache.RedisEnabled)
	c.Cache.RedisAddr = getEnv("ITC_CACHE_REDIS_ADDR", c.Cache.RedisAddr)
	c.Cache.RedisPass = getEnv("ITC_CACHE_REDIS_PASSWORD", c.Cache.RedisPass)
	if v := getEnvInt("ITC_CACHE_REDIS_DB", -1); v >= 0 {
		c.Cache.RedisDB = v
	}

	c.Tracing.Enabled = getEnvBool("ITC_TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.Endpoint = getEnv("ITC_TRACING_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.ServiceName = getEnv("ITC_TRACING_SERVICE_NAME", c.Tracing.ServiceName)

	c.applyDefaults()
}

// applyDefaults sets sensible defaults for zero-valued config fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Version == "" {
		c.Server.Version = "dev"
	}
	if c.Server.ReadTimeoutSec == 0 {
		c.Server.ReadTimeoutSec = 15
	}
	if c.Server.WriteTimeoutSec == 0 {
		c.Server.WriteTimeoutSec = 30
	}
	if c.Server.IdleTimeoutSec == 0 {
		c.Server.IdleTimeoutSec = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30
	}
	if len(c.Server.CORSAllowOrigins) == 0 {
		c.Server.CORSAllowOrigins = []string{"*"}
	}
	if c.Legacy.TimeoutSec == 0 {
		c.Legacy.TimeoutSec = 30
	}
	if c.Legacy.MaxIterations == 0 {
		c.Legacy.MaxIterations = 10
	}
	if c.Legacy.InitialProbeTT == 0 {
		c.Legacy.InitialProbeTT = 1200
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "lucuma-itc"
	}
	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1.0
	}
}

// =============================================================================
// Helper Functions
// =============================================================================

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// =============================================================================
// Convenience Methods
// =============================================================================

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) GetPort() string {
	if c.Server.Port == "" {
		return "8080"
	}
	return c.Server.Port
}
