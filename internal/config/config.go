package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. PAVEX_DB_DSN for db.dsn.
const EnvPrefix = "PAVEX"

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr    string
		TLSCert string `mapstructure:"tls_cert"`
		TLSKey  string `mapstructure:"tls_key"`
	} `mapstructure:"http"`

	DB struct {
		Driver string
		DSN    string
	} `mapstructure:"db"`

	Auth struct {
		TokenKey   string  `mapstructure:"token_key"`
		RatePerSec float64 `mapstructure:"rate_per_sec"`
		Burst      int
	} `mapstructure:"auth"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Solver struct {
		Population int
		MaxPasses  int `mapstructure:"max_passes"`
		Epsilon    float64
		Top        int
	} `mapstructure:"solver"`

	Earthwork struct {
		EmbankmentCost float64 `mapstructure:"embankment_cost"`
		ExcavationCost float64 `mapstructure:"excavation_cost"`
	} `mapstructure:"earthwork"`
}

// TLS reports whether both certificate and key are configured.
func (c Config) TLS() bool {
	return c.HTTP.TLSCert != "" && c.HTTP.TLSKey != ""
}

func defaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.tls_cert", "")
	v.SetDefault("http.tls_key", "")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("auth.token_key", "")
	v.SetDefault("auth.rate_per_sec", 1.0)
	v.SetDefault("auth.burst", 3)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("solver.population", 5000)
	v.SetDefault("solver.max_passes", 10)
	v.SetDefault("solver.epsilon", 0.01)
	v.SetDefault("solver.top", 0)
	v.SetDefault("earthwork.embankment_cost", 10.0)
	v.SetDefault("earthwork.excavation_cost", 20.0)
}

// Load reads an optional .env file, then the config file at path if given,
// then PAVEX_* environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: db.driver must be postgres or sqlite, got %q", c.DB.Driver)
	}
	if c.Solver.Population < 0 || c.Solver.MaxPasses < 0 || c.Solver.Epsilon < 0 || c.Solver.Top < 0 {
		return errors.New("config: solver settings must not be negative")
	}
	if c.Auth.RatePerSec <= 0 || c.Auth.Burst <= 0 {
		return errors.New("config: auth.rate_per_sec and auth.burst must be positive")
	}
	if (c.HTTP.TLSCert == "") != (c.HTTP.TLSKey == "") {
		return errors.New("config: http.tls_cert and http.tls_key go together")
	}
	return nil
}
