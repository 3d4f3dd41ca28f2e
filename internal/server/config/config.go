// Package config отвечает за:
// - чтение server.yaml (если он есть)
// - подстановку переменных окружения вида ${SECRET}
// - переопределение полей из переменных окружения (PORT, DB_HOST, SECRET, ...)
// - проставление дефолтов
// - валидацию
// - подключение к базе и миграции (db_postgres.go)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config: корневая структура всего конфига сервера.
type Config struct {
	Env        string           `yaml:"env" env:"APP_ENV"` // dev|stage|prod
	Server     ServerConfig     `yaml:"server"`
	TLS        TLSConfig        `yaml:"tls"`
	DB         DBConfig         `yaml:"db"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Auth       AuthConfig       `yaml:"auth"`
	Password   PasswordConfig   `yaml:"password"`
	Notes      NotesConfig      `yaml:"notes"`
	CORS       CORSConfig       `yaml:"cors"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig: настройки HTTP-сервера.
type ServerConfig struct {
	Host              string        `yaml:"host" env:"HOST"`
	Port              int           `yaml:"port" env:"PORT"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
	RequestTimeout    time.Duration `yaml:"request_timeout"`  // chi middleware.Timeout
	MaxHeaderBytes    int           `yaml:"max_header_bytes"` // лимит размера заголовков
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`   // лимит размера тела запроса
}

// TLSConfig: настройки HTTPS. По умолчанию сервер работает по HTTP.
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled" env:"TLS_ENABLED"`
	CertFile   string `yaml:"cert_file" env:"TLS_CERT_FILE"`
	KeyFile    string `yaml:"key_file" env:"TLS_KEY_FILE"`
	MinVersion string `yaml:"min_version"` // "1.2"|"1.3"
}

// DBConfig: настройки подключения к базе данных.
//
// Если DSN пустой, он собирается из Host/Port/Name/User/Password.
type DBConfig struct {
	DSN             string        `yaml:"dsn" env:"DB_DSN"`
	Host            string        `yaml:"host" env:"DB_HOST"`
	Port            int           `yaml:"port" env:"DB_PORT"`
	Name            string        `yaml:"name" env:"DB_NAME"`
	User            string        `yaml:"user" env:"DB_USER"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	QueryTimeout    time.Duration `yaml:"query_timeout"` // таймаут на запросы к БД
	ConnectRetry    time.Duration `yaml:"connect_retry"` // сколько пытаемся достучаться до базы на старте
}

// MigrationsConfig: настройки миграций БД.
type MigrationsConfig struct {
	Skip bool `yaml:"skip" env:"MIGRATIONS_SKIP"`
}

// AuthConfig: настройки аутентификации/авторизации.
type AuthConfig struct {
	// Secret: ключ подписи HS256. Пустой ключ не мешает старту,
	// но регистрация и логин отвечают 500.
	Secret      string        `yaml:"secret" env:"SECRET"`
	Issuer      string        `yaml:"issuer"`
	RegisterTTL time.Duration `yaml:"register_ttl"`
	LoginTTL    time.Duration `yaml:"login_ttl"`
	// ProtectNotes закрывает /api/notes JWT-мидлварой.
	ProtectNotes bool `yaml:"protect_notes" env:"PROTECT_NOTES"`
}

// PasswordConfig: настройки хэширования паролей пользователей.
type PasswordConfig struct {
	Hasher string       `yaml:"hasher" env:"PASSWORD_HASHER"` // bcrypt|argon2id
	Argon2 Argon2Config `yaml:"argon2"`
	Bcrypt BcryptConfig `yaml:"bcrypt"`
}

// Argon2Config: параметры argon2id.
type Argon2Config struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
	KeyLen    uint32 `yaml:"key_len"`
	SaltLen   uint32 `yaml:"salt_len"`
}

// BcryptConfig: параметры bcrypt.
type BcryptConfig struct {
	Cost int `yaml:"cost" env:"BCRYPT_COST"`
}

// NotesConfig: поведение ресурса заметок.
type NotesConfig struct {
	// LegacyGetByID: GET /api/notes/{id} отвечает только {message}, без самой заметки;
	// отсутствующая заметка тоже даёт 200.
	LegacyGetByID bool `yaml:"legacy_get_by_id" env:"NOTES_LEGACY_GET_BY_ID"`
}

// CORSConfig: параметры go-chi/cors.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// LogConfig: настройки логирования (zap).
type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`   // debug|info|warn|error
	Format     string `yaml:"format" env:"LOG_FORMAT"` // json|console
	File       string `yaml:"file" env:"LOG_FILE"`     // "-": не писать в файл
	Stdout     bool   `yaml:"stdout" env:"LOG_STDOUT"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Load читает YAML (если файл есть), подставляет переменные окружения вида ${VAR},
// затем накладывает переменные окружения, проставляет дефолты и валидирует.
//
// Отсутствие файла не ошибка: сервер можно настроить только окружением.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			// signing key: "${SECRET}" -> secret: "реальное_значение"
			expanded := ExpandEnvStrict(string(raw))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
		}
	}

	// незаданные переменные окружения не трогают значения из yaml
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("не удалось прочитать окружение: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var placeholderRe = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана: оставляем ${VAR} как есть.
func ExpandEnvStrict(s string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := placeholderRe.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyDefaults: дефолтные значения, если поле не задано ни в yaml, ни в окружении.
func ApplyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}

	s := &cfg.Server
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 5000
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 10 * time.Second
	}
	if s.ReadHeaderTimeout == 0 {
		s.ReadHeaderTimeout = 5 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 15 * time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = 60 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
	if s.RequestTimeout == 0 {
		s.RequestTimeout = 30 * time.Second
	}
	if s.MaxHeaderBytes == 0 {
		s.MaxHeaderBytes = 1 << 20
	}
	if s.MaxBodyBytes == 0 {
		s.MaxBodyBytes = 1 << 20
	}

	if cfg.TLS.Enabled && cfg.TLS.MinVersion == "" {
		cfg.TLS.MinVersion = "1.2"
	}

	db := &cfg.DB
	if db.Host == "" {
		db.Host = "localhost"
	}
	if db.Port == 0 {
		db.Port = 5432
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	if db.MaxOpenConns == 0 {
		db.MaxOpenConns = 10
	}
	if db.MaxIdleConns == 0 {
		db.MaxIdleConns = 5
	}
	if db.ConnMaxLifetime == 0 {
		db.ConnMaxLifetime = 30 * time.Minute
	}
	if db.ConnMaxIdleTime == 0 {
		db.ConnMaxIdleTime = 5 * time.Minute
	}
	if db.QueryTimeout == 0 {
		db.QueryTimeout = 5 * time.Second
	}
	if db.ConnectRetry == 0 {
		db.ConnectRetry = 30 * time.Second
	}

	// ${SECRET} не подставился, значит ключа нет
	if placeholderRe.MatchString(cfg.Auth.Secret) {
		cfg.Auth.Secret = ""
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "notebook-app"
	}
	if cfg.Auth.RegisterTTL == 0 {
		cfg.Auth.RegisterTTL = 30 * 24 * time.Hour
	}
	if cfg.Auth.LoginTTL == 0 {
		cfg.Auth.LoginTTL = 24 * time.Hour
	}

	p := &cfg.Password
	if p.Hasher == "" {
		p.Hasher = "bcrypt"
	}
	if p.Bcrypt.Cost == 0 {
		p.Bcrypt.Cost = 12
	}
	if p.Argon2.Time == 0 {
		p.Argon2.Time = 3
	}
	if p.Argon2.MemoryKiB == 0 {
		p.Argon2.MemoryKiB = 64 * 1024
	}
	if p.Argon2.Threads == 0 {
		p.Argon2.Threads = 2
	}
	if p.Argon2.KeyLen == 0 {
		p.Argon2.KeyLen = 32
	}
	if p.Argon2.SaltLen == 0 {
		p.Argon2.SaltLen = 16
	}

	c := &cfg.CORS
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Accept", "Authorization", "Content-Type"}
	}
	if c.MaxAge == 0 {
		c.MaxAge = 300
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate проверяет, что конфиг заполнен корректно.
// Если что-то не так: возвращаем ошибку и сервер НЕ стартует.
//
// Пустой auth.secret сюда не относится: это ошибка уровня запроса.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host обязателен")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}

	if c.TLS.Enabled {
		if c.TLS.CertFile == "" || c.TLS.KeyFile == "" {
			return errors.New("tls.cert_file и tls.key_file обязательны при tls.enabled=true")
		}
		// TLS 1.0/1.1 считаются небезопасными: запрещаем
		if c.TLS.MinVersion != "1.2" && c.TLS.MinVersion != "1.3" {
			return fmt.Errorf("tls.min_version=%s не поддерживается; используй 1.2 или 1.3", c.TLS.MinVersion)
		}
	}

	if c.DB.DSN == "" {
		if c.DB.Name == "" {
			return errors.New("db.dsn или db.name (DB_NAME) обязателен")
		}
		if c.DB.Port <= 0 || c.DB.Port > 65535 {
			return fmt.Errorf("db.port некорректен: %d", c.DB.Port)
		}
	}
	if c.DB.MaxIdleConns > c.DB.MaxOpenConns {
		return fmt.Errorf("db.max_idle_conns (%d) больше db.max_open_conns (%d)", c.DB.MaxIdleConns, c.DB.MaxOpenConns)
	}

	if c.Auth.RegisterTTL <= 0 || c.Auth.LoginTTL <= 0 {
		return errors.New("auth.register_ttl и auth.login_ttl должны быть > 0")
	}

	switch strings.ToLower(c.Password.Hasher) {
	case "bcrypt":
		// bcrypt.MinCost..bcrypt.MaxCost
		if c.Password.Bcrypt.Cost < 4 || c.Password.Bcrypt.Cost > 31 {
			return fmt.Errorf("password.bcrypt.cost должен быть в диапазоне 4..31 (сейчас %d)", c.Password.Bcrypt.Cost)
		}
	case "argon2id":
		if c.Password.Argon2.Time == 0 || c.Password.Argon2.MemoryKiB == 0 || c.Password.Argon2.Threads == 0 {
			return errors.New("password.argon2 должен быть настроен для argon2id")
		}
	default:
		return fmt.Errorf("password.hasher должен быть bcrypt|argon2id (сейчас %q)", c.Password.Hasher)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format должен быть json|console (сейчас %q)", c.Log.Format)
	}

	return nil
}

// SecretConfigured сообщает, задан ли ключ подписи токенов.
func (c *Config) SecretConfigured() bool {
	return strings.TrimSpace(c.Auth.Secret) != ""
}

// Addr: адрес, который слушает HTTP-сервер.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ConnString возвращает строку подключения к PostgreSQL.
func (c DBConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
