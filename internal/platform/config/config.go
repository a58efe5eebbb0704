package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Source    SourceConfig    `mapstructure:"source"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

type SourceConfig struct {
	Driver   string `mapstructure:"driver"` // csv | postgres
	CSVPath  string `mapstructure:"csv_path"`
	Timezone string `mapstructure:"timezone"`
}

type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type DashboardConfig struct {
	TopCities int    `mapstructure:"top_cities"`
	Currency  string `mapstructure:"currency"`
	Locale    string `mapstructure:"locale"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("source.driver", DriverCSV)
	v.SetDefault("source.csv_path", "all_data.csv")
	v.SetDefault("source.timezone", "UTC")

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 10)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("dashboard.top_cities", 10)
	v.SetDefault("dashboard.currency", "IDR")
	v.SetDefault("dashboard.locale", "id-ID")
}

// Load reads defaults, the optional config file at path and the environment.
// Environment keys use the DASHBOARD_ prefix (DASHBOARD_SOURCE_DRIVER);
// POSTGRES_DSN is honoured for the database DSN.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("postgres.dsn", "DASHBOARD_POSTGRES_DSN", "POSTGRES_DSN"); err != nil {
		return nil, fmt.Errorf("bind postgres dsn env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Source.Driver {
	case DriverCSV:
		if c.Source.CSVPath == "" {
			errs = append(errs, errors.New("source.csv_path is required for the csv driver"))
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("postgres.dsn (or POSTGRES_DSN) is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source.driver %q", c.Source.Driver))
	}

	if _, err := time.LoadLocation(c.Source.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid source.timezone: %w", err))
	}
	if c.Dashboard.TopCities <= 0 {
		errs = append(errs, errors.New("dashboard.top_cities must be positive"))
	}
	if _, err := currency.ParseISO(c.Dashboard.Currency); err != nil {
		errs = append(errs, fmt.Errorf("invalid dashboard.currency: %w", err))
	}
	if _, err := language.Parse(c.Dashboard.Locale); err != nil {
		errs = append(errs, fmt.Errorf("invalid dashboard.locale: %w", err))
	}

	return errors.Join(errs...)
}

// Location returns the configured source timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Source.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
