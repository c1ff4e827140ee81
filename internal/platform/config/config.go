package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	PolicyStop     = "stop"
	PolicyContinue = "continue"
)

type Config struct {
	Port              string        `mapstructure:"PORT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	LogFormat         string        `mapstructure:"LOG_FORMAT"`
	AppName           string        `mapstructure:"APP_NAME"`
	HTTPClientTimeout time.Duration `mapstructure:"HTTP_CLIENT_TIMEOUT"`
	SubmitPolicy      string        `mapstructure:"SUBMIT_POLICY"`
	DefaultLang       string        `mapstructure:"DEFAULT_LANG"`
	ReadTimeout       time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `mapstructure:"WRITE_TIMEOUT"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	RecordsTable      string        `mapstructure:"RECORDS_TABLE"`
}

var keys = []string{
	"PORT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"APP_NAME",
	"HTTP_CLIENT_TIMEOUT",
	"SUBMIT_POLICY",
	"DEFAULT_LANG",
	"READ_TIMEOUT",
	"WRITE_TIMEOUT",
	"SESSION_TTL",
	"RECORDS_TABLE",
}

// Load lee .env (si existe) y variables de entorno. Env pisa al archivo.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "medical-data-entry")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", 10*time.Second)
	v.SetDefault("SUBMIT_POLICY", PolicyStop)
	v.SetDefault("DEFAULT_LANG", "en")
	v.SetDefault("READ_TIMEOUT", 5*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SESSION_TTL", 30*time.Minute)
	v.SetDefault("RECORDS_TABLE", "medical_records")

	// Unmarshal solo ve env vars si están bindeadas explícitamente
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.SubmitPolicy = strings.ToLower(strings.TrimSpace(cfg.SubmitPolicy))
	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
	cfg.RecordsTable = strings.TrimSpace(cfg.RecordsTable)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.SubmitPolicy != PolicyStop && c.SubmitPolicy != PolicyContinue {
		return fmt.Errorf("SUBMIT_POLICY must be %q or %q, got %q", PolicyStop, PolicyContinue, c.SubmitPolicy)
	}
	if c.HTTPClientTimeout <= 0 {
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("READ_TIMEOUT and WRITE_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.RecordsTable == "" {
		return fmt.Errorf("RECORDS_TABLE is required")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// ContinueOnFailure indica si el envío sigue tras el primer registro fallido.
func (c *Config) ContinueOnFailure() bool {
	return c.SubmitPolicy == PolicyContinue
}
