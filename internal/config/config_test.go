package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LEADSQUARED_ACCESS_KEY", "LEADSQUARED_SECRET_KEY", "SHEET_WEBAPP_URL",
		"CSAT_LEADSQUARED_ACCESS_KEY", "CSAT_LEADSQUARED_SECRET_KEY", "CSAT_SHEETS_WEBAPP_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	clearCredentialEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10, cfg.HTTP.TimeoutSecs)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout())
	assert.Equal(t, "https://api-in21.leadsquared.com/v2", cfg.LeadSquared.BaseURL)
	assert.Empty(t, cfg.LeadSquared.AccessKey)
	assert.False(t, cfg.LeadSquared.Enabled())
	assert.False(t, cfg.LeadSquared.ParallelLookup)
	assert.Zero(t, cfg.LeadSquared.RateLimitRPS)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)
	clearCredentialEnv(t)

	yaml := `
server:
  port: 9090
  allowed_origins:
    - https://survey.example.com
http:
  timeout_secs: 5
leadsquared:
  access_key: ak
  secret_key: sk
  parallel_lookup: true
sheets:
  webapp_url: https://script.google.com/macros/s/abc/exec
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://survey.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout())
	assert.True(t, cfg.LeadSquared.Enabled())
	assert.True(t, cfg.LeadSquared.ParallelLookup)
	assert.True(t, cfg.Sheets.Enabled())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "https://api-in21.leadsquared.com/v2", cfg.LeadSquared.BaseURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	clearCredentialEnv(t)

	yaml := `
log:
  level: debug
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CSAT_LOG_LEVEL", "warn")
	t.Setenv("CSAT_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadLegacyEnvNames(t *testing.T) {
	chdirTemp(t)
	clearCredentialEnv(t)

	t.Setenv("LEADSQUARED_ACCESS_KEY", "legacy-ak")
	t.Setenv("LEADSQUARED_SECRET_KEY", "legacy-sk")
	t.Setenv("SHEET_WEBAPP_URL", "https://script.google.com/macros/s/legacy/exec")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "legacy-ak", cfg.LeadSquared.AccessKey)
	assert.Equal(t, "legacy-sk", cfg.LeadSquared.SecretKey)
	assert.Equal(t, "https://script.google.com/macros/s/legacy/exec", cfg.Sheets.WebAppURL)
}

func TestLoadPrefixedEnvWinsOverLegacy(t *testing.T) {
	chdirTemp(t)
	clearCredentialEnv(t)

	t.Setenv("CSAT_LEADSQUARED_ACCESS_KEY", "new-ak")
	t.Setenv("LEADSQUARED_ACCESS_KEY", "legacy-ak")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "new-ak", cfg.LeadSquared.AccessKey)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearCredentialEnv(t)
	// godotenv does not override variables that are already set, so unset
	// the ones clearCredentialEnv set to empty.
	require.NoError(t, os.Unsetenv("CSAT_SHEETS_WEBAPP_URL"))
	require.NoError(t, os.Unsetenv("SHEET_WEBAPP_URL"))
	t.Cleanup(func() { os.Unsetenv("CSAT_SHEETS_WEBAPP_URL") })

	env := "CSAT_SHEETS_WEBAPP_URL=https://script.google.com/macros/s/dotenv/exec\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://script.google.com/macros/s/dotenv/exec", cfg.Sheets.WebAppURL)
}

func TestLoadBadYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestLeadSquaredEnabled(t *testing.T) {
	assert.False(t, LeadSquaredConfig{}.Enabled())
	assert.False(t, LeadSquaredConfig{AccessKey: "ak"}.Enabled())
	assert.False(t, LeadSquaredConfig{SecretKey: "sk"}.Enabled())
	assert.True(t, LeadSquaredConfig{AccessKey: "ak", SecretKey: "sk"}.Enabled())
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.HTTP.TimeoutSecs = 10
	cfg.LeadSquared.BaseURL = "https://api-in21.leadsquared.com/v2"
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, validDefaults().Validate())
}

func TestValidate_Invalid(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0
	cfg.HTTP.TimeoutSecs = 0
	cfg.LeadSquared.AccessKey = "ak"
	cfg.LeadSquared.SecretKey = "sk"
	cfg.LeadSquared.BaseURL = ""
	cfg.LeadSquared.RateLimitRPS = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "http.timeout_secs")
	assert.Contains(t, err.Error(), "leadsquared.base_url")
	assert.Contains(t, err.Error(), "rate_limit_rps")
}

func TestRedacted(t *testing.T) {
	cfg := validDefaults()
	cfg.LeadSquared.AccessKey = "ak"
	cfg.LeadSquared.SecretKey = "sk"
	cfg.Sheets.WebAppURL = "https://script.google.com/macros/s/abc/exec"
	cfg.Server.AllowedOrigins = []string{"*"}

	out := cfg.Redacted()

	assert.Equal(t, redacted, out.LeadSquared.AccessKey)
	assert.Equal(t, redacted, out.LeadSquared.SecretKey)
	assert.Equal(t, "https://script.google.com/"+redacted, out.Sheets.WebAppURL)
	// The original is untouched.
	assert.Equal(t, "ak", cfg.LeadSquared.AccessKey)
	out.Server.AllowedOrigins[0] = "changed"
	assert.Equal(t, "*", cfg.Server.AllowedOrigins[0])
}

func TestRedacted_EmptyStaysEmpty(t *testing.T) {
	out := validDefaults().Redacted()

	assert.Empty(t, out.LeadSquared.AccessKey)
	assert.Empty(t, out.Sheets.WebAppURL)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
