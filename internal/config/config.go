package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const redacted = "********"

// Config holds the full application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	LeadSquared LeadSquaredConfig `yaml:"leadsquared" mapstructure:"leadsquared"`
	Sheets      SheetsConfig      `yaml:"sheets" mapstructure:"sheets"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the survey API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// HTTPConfig configures outbound calls.
type HTTPConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the per-call deadline for outbound requests.
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// LeadSquaredConfig holds LeadSquared API credentials. Leaving either key
// empty disables every CRM call.
type LeadSquaredConfig struct {
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	AccessKey      string  `yaml:"access_key" mapstructure:"access_key"`
	SecretKey      string  `yaml:"secret_key" mapstructure:"secret_key"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	ParallelLookup bool    `yaml:"parallel_lookup" mapstructure:"parallel_lookup"`
}

// Enabled reports whether both credentials are present.
func (c LeadSquaredConfig) Enabled() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

// SheetsConfig holds the Google Apps Script web app that appends survey rows.
type SheetsConfig struct {
	WebAppURL string `yaml:"webapp_url" mapstructure:"webapp_url"`
}

// Enabled reports whether a sink endpoint is configured.
func (c SheetsConfig) Enabled() bool {
	return c.WebAppURL != ""
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from an optional .env file, an optional
// config.yaml, and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CSAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Deployments that predate the CSAT_ prefix set these bare names.
	bindings := map[string][]string{
		"leadsquared.access_key": {"CSAT_LEADSQUARED_ACCESS_KEY", "LEADSQUARED_ACCESS_KEY"},
		"leadsquared.secret_key": {"CSAT_LEADSQUARED_SECRET_KEY", "LEADSQUARED_SECRET_KEY"},
		"sheets.webapp_url":      {"CSAT_SHEETS_WEBAPP_URL", "SHEET_WEBAPP_URL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("http.timeout_secs", 10)
	v.SetDefault("leadsquared.base_url", "https://api-in21.leadsquared.com/v2")
	v.SetDefault("leadsquared.access_key", "")
	v.SetDefault("leadsquared.secret_key", "")
	v.SetDefault("leadsquared.rate_limit_rps", 0)
	v.SetDefault("leadsquared.parallel_lookup", false)
	v.SetDefault("sheets.webapp_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a long-running server depends on.
func (c *Config) Validate() error {
	var errs []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if c.HTTP.TimeoutSecs <= 0 {
		errs = append(errs, "http.timeout_secs must be positive")
	}
	if c.LeadSquared.Enabled() && c.LeadSquared.BaseURL == "" {
		errs = append(errs, "leadsquared.base_url is required when credentials are set")
	}
	if c.LeadSquared.RateLimitRPS < 0 {
		errs = append(errs, "leadsquared.rate_limit_rps must not be negative")
	}
	if len(errs) > 0 {
		return eris.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}

// Redacted returns a copy with credentials masked, suitable for printing.
func (c *Config) Redacted() Config {
	out := *c
	out.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	if out.LeadSquared.AccessKey != "" {
		out.LeadSquared.AccessKey = redacted
	}
	if out.LeadSquared.SecretKey != "" {
		out.LeadSquared.SecretKey = redacted
	}
	if out.Sheets.WebAppURL != "" {
		out.Sheets.WebAppURL = redactURL(out.Sheets.WebAppURL)
	}
	return out
}

// redactURL keeps the host so operators can tell deployments apart.
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return redacted
	}
	host, _, _ := strings.Cut(rest, "/")
	return scheme + "://" + host + "/" + redacted
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
