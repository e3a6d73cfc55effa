package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradedash/propfirm"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRADEDASH_"

// Config represents the complete tradedash configuration
type Config struct {
	Account   AccountConfig    `json:"account" yaml:"account"`
	Journal   JournalConfig    `json:"journal" yaml:"journal"`
	Goals     GoalsConfig      `json:"goals" yaml:"goals"`
	Server    ServerConfig     `json:"server" yaml:"server"`
	Log       LogConfig        `json:"log" yaml:"log"`
	PropFirms []PropFirmConfig `json:"prop_firms,omitempty" yaml:"prop_firms,omitempty"`
}

// AccountConfig describes the trading account reports are rendered for
type AccountConfig struct {
	Currency        string  `json:"currency" yaml:"currency"`
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance"`
	Timezone        string  `json:"timezone,omitempty" yaml:"timezone,omitempty"` // IANA name, empty for UTC
}

// JournalConfig selects the trade store
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "memory"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// GoalsConfig holds targets shown next to the metrics
type GoalsConfig struct {
	MonthlyTarget float64 `json:"monthly_target" yaml:"monthly_target"`
	PropTargetPct float64 `json:"prop_target_pct" yaml:"prop_target_pct"` // 0.1 = 10% of account size
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// PropFirmConfig is one prop-firm account as written in the config file
type PropFirmConfig struct {
	ID            string  `json:"id" yaml:"id"`
	Firm          string  `json:"firm" yaml:"firm"`
	Program       string  `json:"program,omitempty" yaml:"program,omitempty"`
	Size          float64 `json:"size" yaml:"size"`
	Cost          float64 `json:"cost" yaml:"cost"`
	Status        string  `json:"status" yaml:"status"`
	Stage         string  `json:"stage,omitempty" yaml:"stage,omitempty"`
	Payouts       float64 `json:"payouts,omitempty" yaml:"payouts,omitempty"`
	StartDate     string  `json:"start_date,omitempty" yaml:"start_date,omitempty"` // YYYY-MM-DD
	AccountNumber string  `json:"account_number,omitempty" yaml:"account_number,omitempty"`
	Equity        float64 `json:"equity" yaml:"equity"`
}

// Account converts the file form into a propfirm.Account.
func (p PropFirmConfig) Account() (propfirm.Account, error) {
	status, err := propfirm.ParseStatus(p.Status)
	if err != nil {
		return propfirm.Account{}, err
	}
	var start time.Time
	if p.StartDate != "" {
		start, err = time.Parse(time.DateOnly, p.StartDate)
		if err != nil {
			return propfirm.Account{}, fmt.Errorf("start_date %q: %w", p.StartDate, err)
		}
	}
	return propfirm.Account{
		ID:            p.ID,
		Firm:          p.Firm,
		Program:       p.Program,
		Size:          decimal.NewFromFloat(p.Size),
		Cost:          decimal.NewFromFloat(p.Cost),
		Status:        status,
		Stage:         p.Stage,
		Payouts:       decimal.NewFromFloat(p.Payouts),
		StartDate:     start,
		AccountNumber: p.AccountNumber,
		Equity:        decimal.NewFromFloat(p.Equity),
	}, nil
}

// PropFirmAccounts converts every configured prop-firm account.
func (c *Config) PropFirmAccounts() ([]propfirm.Account, error) {
	out := make([]propfirm.Account, 0, len(c.PropFirms))
	for i, p := range c.PropFirms {
		a, err := p.Account()
		if err != nil {
			return nil, fmt.Errorf("prop_firms[%d]: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Location returns the account timezone, UTC when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Account.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Account.Timezone)
	if err != nil {
		return nil, fmt.Errorf("account.timezone: %w", err)
	}
	return loc, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads .env if present, then the config file at path (defaults when
// path is empty), then applies TRADEDASH_* environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// readFile parses path over the defaults so omitted sections keep them.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Account.Currency = getEnv("CURRENCY", c.Account.Currency)
	c.Account.Timezone = getEnv("TIMEZONE", c.Account.Timezone)
	c.Journal.Type = getEnv("JOURNAL_TYPE", c.Journal.Type)
	c.Journal.TradesFile = getEnv("TRADES_FILE", c.Journal.TradesFile)
	c.Journal.DBPath = getEnv("DB_PATH", c.Journal.DBPath)
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	var err error
	if c.Account.StartingBalance, err = getEnvAsFloat("STARTING_BALANCE", c.Account.StartingBalance); err != nil {
		return err
	}
	if c.Goals.MonthlyTarget, err = getEnvAsFloat("MONTHLY_TARGET", c.Goals.MonthlyTarget); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(EnvPrefix + key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	return value, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.StartingBalance < 0 {
		return fmt.Errorf("account.starting_balance must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "memory":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'memory'")
	}
	if c.Goals.MonthlyTarget < 0 {
		return fmt.Errorf("goals.monthly_target must not be negative")
	}
	if c.Goals.PropTargetPct < 0 || c.Goals.PropTargetPct > 1 {
		return fmt.Errorf("goals.prop_target_pct must be between 0 and 1")
	}
	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	if c.Log.Format != "" && c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	for i, p := range c.PropFirms {
		if p.Firm == "" {
			return fmt.Errorf("prop_firms[%d].firm is required", i)
		}
		if p.Size <= 0 {
			return fmt.Errorf("prop_firms[%d].size must be positive", i)
		}
		if _, err := p.Account(); err != nil {
			return fmt.Errorf("prop_firms[%d]: %w", i, err)
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:        "USD",
			StartingBalance: 100000,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradedash.sqlite",
		},
		Goals: GoalsConfig{
			MonthlyTarget: 10000,
			PropTargetPct: 0.1,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
