package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string   `mapstructure:"PORT"`
	Env                 string   `mapstructure:"ENV"`
	DatabaseURL         string   `mapstructure:"DATABASE_URL"`
	DBMaxConns          int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns          int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins         []string `mapstructure:"CORS_ORIGINS"`
	RxNavBaseURL        string   `mapstructure:"RXNAV_BASE_URL"`
	OpenFDABaseURL      string   `mapstructure:"OPENFDA_BASE_URL"`
	LookupTimeoutSecs   int      `mapstructure:"LOOKUP_TIMEOUT_SECS"`
	RateLimitRPS        float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst      int      `mapstructure:"RATE_LIMIT_BURST"`
	TransliterationFile string   `mapstructure:"TRANSLITERATION_FILE"`
	SynonymFile         string   `mapstructure:"SYNONYM_FILE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RXNAV_BASE_URL", "https://rxnav.nlm.nih.gov/REST")
	v.SetDefault("OPENFDA_BASE_URL", "https://api.fda.gov/drug/event.json")
	v.SetDefault("LOOKUP_TIMEOUT_SECS", 10)
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RXNAV_BASE_URL")
	v.BindEnv("OPENFDA_BASE_URL")
	v.BindEnv("LOOKUP_TIMEOUT_SECS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("TRANSLITERATION_FILE")
	v.BindEnv("SYNONYM_FILE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// LookupTimeout is the deadline applied to each outbound RxNav/openFDA call.
// A stalled external dependency fails that one lookup, never the whole request.
func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.LookupTimeoutSecs) * time.Second
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.LookupTimeoutSecs <= 0 {
		return fmt.Errorf("LOOKUP_TIMEOUT_SECS must be positive, got %d", c.LookupTimeoutSecs)
	}
	if c.RxNavBaseURL == "" {
		return fmt.Errorf("RXNAV_BASE_URL is required")
	}
	if c.OpenFDABaseURL == "" {
		return fmt.Errorf("OPENFDA_BASE_URL is required")
	}
	return nil
}
