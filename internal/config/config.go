// Package config resolves cascadectl settings. Later sources win:
// defaults, the TOML file, .env, CASCADE_* environment variables, then flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/CristiGvl/cascade-hwmon/client"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	OutputJSON  = "json"
	OutputTable = "table"
)

type Config struct {
	Host           string  `toml:"host"`
	Port           int     `toml:"port"`
	TimeoutSeconds float64 `toml:"timeout"`
	TLSSkipVerify  bool    `toml:"tls_skip_verify"`
	Secure         bool    `toml:"secure"`
	Output         string  `toml:"output"`
	LogLevel       string  `toml:"log_level"`
	LogFormat      string  `toml:"log_format"`
}

func Default() *Config {
	return &Config{
		Host:           client.DefaultHost,
		Port:           client.DefaultPort,
		TimeoutSeconds: client.DefaultTimeout.Seconds(),
		Output:         OutputTable,
		LogLevel:       "warn",
		LogFormat:      "console",
	}
}

// Load reads file and envFile (both optional; a missing file is skipped)
// and then the process environment.
func Load(file, envFile string) (*Config, error) {
	return load(file, envFile, os.LookupEnv)
}

func load(file, envFile string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if file != "" {
		if _, err := toml.DecodeFile(file, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	// Real environment variables take precedence over .env entries.
	dotenv := map[string]string{}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		if values != nil {
			dotenv = values
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CASCADE_HOST"); ok {
		c.Host = v
	}
	if v, ok := lookup("CASCADE_PORT"); ok {
		port, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("invalid CASCADE_PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v, ok := lookup("CASCADE_TIMEOUT"); ok {
		seconds, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("invalid CASCADE_TIMEOUT %q: %w", v, err)
		}
		c.TimeoutSeconds = seconds
	}
	if v, ok := lookup("CASCADE_TLS_SKIP_VERIFY"); ok {
		skip, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("invalid CASCADE_TLS_SKIP_VERIFY %q: %w", v, err)
		}
		c.TLSSkipVerify = skip
	}
	if v, ok := lookup("CASCADE_SECURE"); ok {
		secure, err := cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("invalid CASCADE_SECURE %q: %w", v, err)
		}
		c.Secure = secure
	}
	if v, ok := lookup("CASCADE_OUTPUT"); ok {
		c.Output = v
	}
	if v, ok := lookup("CASCADE_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("CASCADE_LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.TimeoutSeconds)
	}
	if c.Output != OutputJSON && c.Output != OutputTable {
		return fmt.Errorf("unknown output %q (want json or table)", c.Output)
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// ClientConfig converts the settings for client.New.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		Host:          c.Host,
		Port:          c.Port,
		Timeout:       c.Timeout(),
		TLSSkipVerify: c.TLSSkipVerify,
		Secure:        c.Secure,
	}
}
