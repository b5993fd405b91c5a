// Package config предоставляет структуры и функции для загрузки конфига.
//
// Если задан CONFIG_PATH, читается YAML-файл, и переменные окружения перекрывают его значения.
// Иначе конфиг собирается только из окружения, предварительно подгружается .env файл (ENV_FILE).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvProduction включает secure-куки и SameSite=None.
const EnvProduction = "production"

// DevSessionSecret секрет сессий для локального запуска. В production запрещён.
const DevSessionSecret = "glam-dev-secret"

// ErrInsecureSessionSecret production запущен без собственного секрета сессий.
var ErrInsecureSessionSecret = errors.New("session secret must be set in production")

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Redis      `yaml:"redis"`
	Session    `yaml:"session"`
	CORS       `yaml:"cors"`
	SMS        `yaml:"sms"`
	RabbitMQ   `yaml:"rabbitmq"`
	Alerts     `yaml:"alerts"`
	Tracing    `yaml:"tracing"`
	AdminSeed  `yaml:"admin_seed"`
	Access     `yaml:"access"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":3000"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Storage выбирает адаптер хранилища.
type Storage struct {
	Driver         string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	PostgresDSN    string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	MongoURI       string `yaml:"mongo_uri" env:"MONGODB_URI"`
	MongoDatabase  string `yaml:"mongo_database" env:"MONGODB_DATABASE" env-default:"glam"`
	MigrateOnStart bool   `yaml:"migrate_on_start" env:"MIGRATE_ON_START"`
}

// Redis структура для настройки подключения к redis, который кэширует карточки товаров
type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"REDIS_ENABLED"`
	Address     string        `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user" env:"REDIS_USER"`
	DB          int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries  int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env:"REDIS_TIMEOUT" env-default:"3s"`
	ProductTTL  time.Duration `yaml:"product_ttl" env:"REDIS_PRODUCT_TTL" env-default:"5m"`
}

// Session настраивает серверные сессии и куку.
type Session struct {
	Secret          string        `yaml:"secret" env:"SESSION_SECRET" env-default:"glam-dev-secret"`
	CookieName      string        `yaml:"cookie_name" env:"SESSION_COOKIE" env-default:"glam.sid"`
	TTL             time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"SESSION_CLEANUP_INTERVAL" env-default:"10m"`
}

// CORS содержит разрешённые origin. localhost и 127.0.0.1 разрешены всегда.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// SMS настраивает отправку через Twilio.
type SMS struct {
	TestMode   bool    `yaml:"test_mode" env:"TEST_MODE"`
	AccountSID string  `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string  `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
	FromNumber string  `yaml:"from_number" env:"TWILIO_PHONE_NUMBER"`
	RateLimit  float64 `yaml:"rate_limit" env:"SMS_RATE_LIMIT" env-default:"1"`
	RateBurst  int     `yaml:"rate_burst" env:"SMS_RATE_BURST" env-default:"3"`
}

// ProviderConfigured сообщает, заданы ли учётные данные Twilio.
func (s SMS) ProviderConfigured() bool {
	return s.AccountSID != "" && s.AuthToken != ""
}

// RabbitMQ настраивает подключение к брокеру.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	MaxRetries int           `yaml:"max_retries" env:"RABBITMQ_MAX_RETRIES" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// Alerts описывает уведомления о заканчивающихся товарах.
type Alerts struct {
	Enabled           bool   `yaml:"enabled" env:"ALERTS_ENABLED"`
	LowStockThreshold int    `yaml:"low_stock_threshold" env:"ALERTS_LOW_STOCK_THRESHOLD"`
	AdminPhone        string `yaml:"admin_phone" env:"ALERTS_ADMIN_PHONE"`
}

// Tracing включает экспорт трейсов по OTLP/gRPC, если задан Endpoint.
type Tracing struct {
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"glam-app"`
}

// AdminSeed задаёт администратора, которого сервер создаёт при старте.
type AdminSeed struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL"`
	Name     string `yaml:"name" env:"ADMIN_NAME" env-default:"ADMIN"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// Access переводит маршруты на доступ только для администратора.
// По умолчанию список пользователей открыт, а изменение каталога требует только сессии.
type Access struct {
	AdminOnlyUsers    bool `yaml:"admin_only_users" env:"ACCESS_ADMIN_ONLY_USERS"`
	AdminOnlyProducts bool `yaml:"admin_only_products" env:"ACCESS_ADMIN_ONLY_PRODUCTS"`
}

// IsProduction сообщает, запущен ли сервис в боевом окружении.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// defaults возвращает конфиг с умолчаниями для полей, у которых нулевое значение осмысленно.
// cleanenv применяет env-default к любому нулевому полю и перетёр бы false или 0 из YAML.
func defaults() Config {
	return Config{
		Storage: Storage{MigrateOnStart: true},
		Alerts:  Alerts{LowStockThreshold: 3},
	}
}

// Load читает конфиг из CONFIG_PATH или из окружения.
func Load() (*Config, error) {
	const op = "config.Load"
	cfg := defaults()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: file %s: %w", op, configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &cfg, nil
	}

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.IsProduction() && (c.Session.Secret == "" || c.Session.Secret == DevSessionSecret) {
		return ErrInsecureSessionSecret
	}
	return nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"Redis:\n"+
			"  Enabled: %t\n"+
			"  Address: %s\n"+
			"Session:\n"+
			"  CookieName: %s\n"+
			"  TTL: %s\n"+
			"SMS:\n"+
			"  TestMode: %t\n"+
			"Alerts:\n"+
			"  Enabled: %t\n"+
			"  LowStockThreshold: %d\n",
		c.Env,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.Storage.Driver,
		c.Redis.Enabled,
		c.Redis.Address,
		c.Session.CookieName,
		c.Session.TTL,
		c.SMS.TestMode,
		c.Alerts.Enabled,
		c.Alerts.LowStockThreshold,
	)
}
