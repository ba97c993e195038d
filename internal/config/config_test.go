package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, BackendMongo, cfg.MongoDB.Backend)
	assert.Equal(t, "warehouse_db", cfg.MongoDB.DBName)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("APP_PORT", "5000")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://wh.example.com")
	t.Setenv("TIMEZONE", "Asia/Dubai")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.MongoDB.Backend)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://wh.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "Asia/Dubai", cfg.Reporting.Timezone)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGODB_DB_NAME=from_file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MONGODB_DB_NAME") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.MongoDB.DBName)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadInvalidTTL(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Auth:      AuthConfig{JWTSecret: "x", TokenTTL: time.Hour},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
			MongoDB:   MongoDBConfig{Backend: BackendMongo, URI: "mongodb://localhost", DBName: "db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = "http" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = "70000" }, wantErr: true},
		{name: "empty secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.MongoDB.Backend = "sqlite" }, wantErr: true},
		{name: "memory without uri", mutate: func(c *Config) { c.MongoDB = MongoDBConfig{Backend: BackendMemory} }},
		{name: "mongo without uri", mutate: func(c *Config) { c.MongoDB.URI = "" }, wantErr: true},
		{name: "sheets half configured", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "abc" }, wantErr: true},
		{name: "sheets configured", mutate: func(c *Config) { c.Sheets = SheetsConfig{CredentialsPath: "/c.json", SpreadsheetID: "abc"} }},
		{name: "bad timezone", mutate: func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, wantErr: true},
		{name: "no cron", mutate: func(c *Config) { c.Reporting.CronSchedule = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
