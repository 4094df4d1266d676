// Package config loads reckon.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/reckon/internal/period"
)

// FileName is the config file at the root of a books repo.
const FileName = "reckon.yaml"

// Config represents reckon.yaml.
type Config struct {
	Business     BusinessConfig  `yaml:"business"`
	Fiscal       FiscalConfig    `yaml:"fiscal"`
	Reporting    ReportingConfig `yaml:"reporting"`
	Accounts     ControlAccounts `yaml:"accounts"`
	BankAccounts []BankAccount   `yaml:"bank_accounts,omitempty"`
	Logging      LoggingConfig   `yaml:"logging"`
	Git          GitConfig       `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD", e.g. "01-01"
}

// ReportingConfig controls report output.
type ReportingConfig struct {
	Currency      string `yaml:"currency"`       // ISO 4217 code
	Tolerance     string `yaml:"tolerance"`      // imbalance tolerance, e.g. "0.01"
	DefaultPeriod string `yaml:"default_period"` // monthly, quarterly or yearly
}

// ControlAccounts names the chart accounts documents post against.
type ControlAccounts struct {
	Receivable int `yaml:"receivable"`
	Payable    int `yaml:"payable"`
}

// BankAccount maps a bank feed to a chart-of-accounts entry.
type BankAccount struct {
	Name      string `yaml:"name"`
	Format    string `yaml:"format"` // statement parser, e.g. "chase"
	LastFour  string `yaml:"last_four"`
	AccountID int    `yaml:"account_id"`
}

// LoggingConfig selects the logger.
type LoggingConfig struct {
	Mode string `yaml:"mode"` // "debug" for console output, anything else for JSON
}

// GitConfig controls committing the books after each change.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a reckon.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for new books.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Reporting: ReportingConfig{
			Currency:      "USD",
			Tolerance:     "0.01",
			DefaultPeriod: "monthly",
		},
		Accounts: ControlAccounts{
			Receivable: 1200,
			Payable:    2100,
		},
		Logging: LoggingConfig{
			Mode: "production",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Reckon",
			AuthorEmail: "books@reckon.local",
		},
	}
}

// LoadRepo reads <repoRoot>/reckon.yaml and applies environment overrides.
// A missing file yields the defaults.
func LoadRepo(repoRoot string) (*Config, error) {
	cfg, err := Load(filepath.Join(repoRoot, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default("", "llc_single_member"), nil
	}
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, filepath.Join(repoRoot, ".env")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from RECKON_CURRENCY, RECKON_TOLERANCE and
// RECKON_LOG_MODE. Values in envFile, when it exists, apply only where the
// process environment does not set the variable.
func ApplyEnv(cfg *Config, envFile string) error {
	v := viper.New()
	v.SetEnvPrefix("RECKON")
	v.AutomaticEnv()

	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", filepath.Base(envFile), err)
		}
		for k, val := range vars {
			if key, ok := strings.CutPrefix(k, "RECKON_"); ok {
				v.SetDefault(strings.ToLower(key), val)
			}
		}
	}

	if s := v.GetString("currency"); s != "" {
		cfg.Reporting.Currency = strings.ToUpper(s)
	}
	if s := v.GetString("tolerance"); s != "" {
		cfg.Reporting.Tolerance = s
	}
	if s := v.GetString("log_mode"); s != "" {
		cfg.Logging.Mode = s
	}
	return cfg.Validate()
}

// Validate checks the values other packages parse.
func (c *Config) Validate() error {
	if _, err := c.ToleranceDecimal(); err != nil {
		return err
	}
	if _, err := c.Period(); err != nil {
		return err
	}
	if _, err := c.FiscalStartMonth(); err != nil {
		return err
	}
	return nil
}

// ToleranceDecimal parses the imbalance tolerance. Empty means zero, which
// reports treat as their default.
func (c *Config) ToleranceDecimal() (decimal.Decimal, error) {
	if c.Reporting.Tolerance == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(c.Reporting.Tolerance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reporting.tolerance %q: %w", c.Reporting.Tolerance, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("reporting.tolerance %q must not be negative", c.Reporting.Tolerance)
	}
	return d, nil
}

// Period parses the default report period.
func (c *Config) Period() (period.Type, error) {
	if c.Reporting.DefaultPeriod == "" {
		return period.Monthly, nil
	}
	t, err := period.Parse(c.Reporting.DefaultPeriod)
	if err != nil {
		return period.Monthly, fmt.Errorf("reporting.default_period: %w", err)
	}
	return t, nil
}

// FiscalStartMonth returns the month the fiscal year begins in.
func (c *Config) FiscalStartMonth() (time.Month, error) {
	if c.Fiscal.YearStart == "" {
		return time.January, nil
	}
	mm, _, _ := strings.Cut(c.Fiscal.YearStart, "-")
	m, err := strconv.Atoi(mm)
	if err != nil || m < 1 || m > 12 {
		return time.January, fmt.Errorf("fiscal.year_start %q: want MM-DD", c.Fiscal.YearStart)
	}
	return time.Month(m), nil
}

// BankAccount returns the configured bank feed for a chart account.
func (c *Config) BankAccount(accountID int) (BankAccount, bool) {
	for _, b := range c.BankAccounts {
		if b.AccountID == accountID {
			return b, true
		}
	}
	return BankAccount{}, false
}
