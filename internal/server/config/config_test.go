package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mustafaciftc/notebook-app/internal/server/config"
)

// clearEnv обнуляет переменные, которые читает Load, чтобы окружение
// машины не влияло на тест. Пустое значение env.Parse игнорирует.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "HOST", "PORT", "TLS_ENABLED", "TLS_CERT_FILE", "TLS_KEY_FILE",
		"DB_DSN", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE",
		"MIGRATIONS_SKIP", "SECRET", "PROTECT_NOTES", "PASSWORD_HASHER", "BCRYPT_COST",
		"NOTES_LEGACY_GET_BY_ID", "CORS_ALLOWED_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "LOG_STDOUT",
	} {
		t.Setenv(k, "")
	}
}

func minimalValidConfig() *config.Config {
	cfg := &config.Config{
		DB: config.DBConfig{Name: "notebook"},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestExpandEnvStrict_ReplacesExistingEnv(t *testing.T) {
	t.Setenv("NOTEBOOK_TEST_SECRET", "s3cr3t")

	out := config.ExpandEnvStrict(`secret: "${NOTEBOOK_TEST_SECRET}"`)
	require.Equal(t, `secret: "s3cr3t"`, out)
}

func TestExpandEnvStrict_LeavesUnknownEnvAsIs(t *testing.T) {
	in := `secret: "${NOTEBOOK_MISSING_ENV}"`
	require.Equal(t, in, config.ExpandEnvStrict(in))
}

func TestApplyDefaults_SetsExpectedDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 5000, cfg.Server.Port)
	require.Equal(t, "bcrypt", cfg.Password.Hasher)
	require.Equal(t, 12, cfg.Password.Bcrypt.Cost)
	require.Equal(t, 30*24*time.Hour, cfg.Auth.RegisterTTL)
	require.Equal(t, 24*time.Hour, cfg.Auth.LoginTTL)
	require.Equal(t, "localhost", cfg.DB.Host)
	require.Equal(t, 5432, cfg.DB.Port)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Auth.ProtectNotes)
	require.False(t, cfg.Notes.LegacyGetByID)
}

func TestApplyDefaults_DropsUnexpandedSecret(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{Secret: "${SECRET}"}}
	config.ApplyDefaults(cfg)

	require.Empty(t, cfg.Auth.Secret)
	require.False(t, cfg.SecretConfigured())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"пустой host", func(c *config.Config) { c.Server.Host = "" }},
		{"порт вне диапазона", func(c *config.Config) { c.Server.Port = 70000 }},
		{"tls без сертификата", func(c *config.Config) { c.TLS.Enabled = true; c.TLS.MinVersion = "1.2" }},
		{"tls 1.1", func(c *config.Config) {
			c.TLS = config.TLSConfig{Enabled: true, CertFile: "c", KeyFile: "k", MinVersion: "1.1"}
		}},
		{"нет ни dsn ни имени базы", func(c *config.Config) { c.DB.Name = "" }},
		{"idle больше open", func(c *config.Config) { c.DB.MaxIdleConns = 50 }},
		{"неизвестный hasher", func(c *config.Config) { c.Password.Hasher = "md5" }},
		{"bcrypt cost слишком большой", func(c *config.Config) { c.Password.Bcrypt.Cost = 40 }},
		{"нулевой ttl", func(c *config.Config) { c.Auth.LoginTTL = -time.Second }},
		{"формат логов", func(c *config.Config) { c.Log.Format = "xml" }},
	}

	require.NoError(t, minimalValidConfig().Validate())

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := minimalValidConfig()
			c.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_MissingSecretIsNotFatal(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.Auth.Secret = ""

	require.NoError(t, cfg.Validate())
	require.False(t, cfg.SecretConfigured())
}

func TestLoad_YAMLThenEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET", "from-env-secret")
	t.Setenv("PORT", "8000")
	t.Setenv("PROTECT_NOTES", "true")

	yml := `
server:
  host: "127.0.0.1"
  port: 7000
db:
  host: "db.internal"
  name: "notebook"
  user: "app"
  password: "pw"
auth:
  secret: "${SECRET}"
  login_ttl: 2h
password:
  bcrypt:
    cost: 10
notes:
  legacy_get_by_id: true
log:
  file: "-"
`
	p := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(p, []byte(yml), 0o600))

	cfg, err := config.Load(p)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8000, cfg.Server.Port) // окружение сильнее yaml
	require.Equal(t, "from-env-secret", cfg.Auth.Secret)
	require.True(t, cfg.SecretConfigured())
	require.True(t, cfg.Auth.ProtectNotes)
	require.True(t, cfg.Notes.LegacyGetByID)
	require.Equal(t, 2*time.Hour, cfg.Auth.LoginTTL)
	require.Equal(t, 30*24*time.Hour, cfg.Auth.RegisterTTL)
	require.Equal(t, 10, cfg.Password.Bcrypt.Cost)
	require.Equal(t, "-", cfg.Log.File)
	require.Equal(t, "127.0.0.1:8000", cfg.Addr())
	require.Equal(t, "postgres://app:pw@db.internal:5432/notebook?sslmode=disable", cfg.DB.ConnString())
}

func TestLoad_MissingFileUsesEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "notes")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p@ss/word")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	require.Equal(t, 5000, cfg.Server.Port)
	require.False(t, cfg.SecretConfigured())
	require.Equal(t, "postgres://u:p%40ss%2Fword@pg:6543/notes?sslmode=disable", cfg.DB.ConnString())
}

func TestLoad_DSNWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://x:y@h:1/d?sslmode=require")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "postgres://x:y@h:1/d?sslmode=require", cfg.DB.ConnString())
}

func TestLoad_BrokenYAML(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(p, []byte("server: [unclosed"), 0o600))

	_, err := config.Load(p)
	require.Error(t, err)
}

func TestLoad_InvalidConfigFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_NAME", "notes")
	t.Setenv("PASSWORD_HASHER", "md5")

	_, err := config.Load("")
	require.Error(t, err)
}
