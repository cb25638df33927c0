package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress    string        `env:"SERVER_ADDRESS"`     // Адрес для запуска HTTP-сервера
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT"`    // Таймаут одного исходящего запроса
	MaxConcurrency   int           `env:"MAX_CONCURRENCY"`    // Количество одновременных опросов
	MaxRetries       int           `env:"MAX_RETRIES"`        // Количество повторов после первой попытки
	RetryBackoff     time.Duration `env:"RETRY_BACKOFF"`      // Начальная пауза между повторами
	BodyPreviewLimit int           `env:"BODY_PREVIEW_LIMIT"` // Максимальный размер превью тела ответа в байтах
	MaxBatchSize     int           `env:"MAX_BATCH_SIZE"`     // Максимальное количество эндпоинтов в одном запросе
	SecretKey        string        `env:"SECRET_KEY"`         // Ключ подписи куки пользователя
	TLSCertFile      string        `env:"TLS_CERT_FILE"`      // Путь к сертификату для HTTPS
	TLSKeyFile       string        `env:"TLS_KEY_FILE"`       // Путь к ключу для HTTPS
}

// NewConfig инициализирует конфигурацию, читая флаги и переменные окружения.
func NewConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:    ":8080", // Значение по умолчанию
		RequestTimeout:   30 * time.Second,
		MaxConcurrency:   8,
		MaxRetries:       2,
		RetryBackoff:     500 * time.Millisecond,
		BodyPreviewLimit: 500,
		MaxBatchSize:     100,
		SecretKey:        "your-secret-key",
	}

	// 1. Определение флагов командной строки
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	flag.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "Таймаут исходящего запроса (env: REQUEST_TIMEOUT)")
	flag.IntVar(&cfg.MaxConcurrency, "c", cfg.MaxConcurrency, "Количество одновременных опросов (env: MAX_CONCURRENCY)")
	flag.IntVar(&cfg.MaxRetries, "r", cfg.MaxRetries, "Количество повторов запроса (env: MAX_RETRIES)")
	flag.DurationVar(&cfg.RetryBackoff, "w", cfg.RetryBackoff, "Начальная пауза между повторами (env: RETRY_BACKOFF)")
	flag.IntVar(&cfg.BodyPreviewLimit, "p", cfg.BodyPreviewLimit, "Размер превью тела ответа в байтах (env: BODY_PREVIEW_LIMIT)")
	flag.IntVar(&cfg.MaxBatchSize, "m", cfg.MaxBatchSize, "Максимальный размер пакета эндпоинтов (env: MAX_BATCH_SIZE)")
	flag.StringVar(&cfg.TLSCertFile, "cert", cfg.TLSCertFile, "Путь к TLS сертификату (env: TLS_CERT_FILE)")
	flag.StringVar(&cfg.TLSKeyFile, "key", cfg.TLSKeyFile, "Путь к TLS ключу (env: TLS_KEY_FILE)")

	// 2. Парсинг флагов командной строки
	flag.Parse()

	// 3. Парсинг переменных окружения (имеет наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsHTTPSEnabled сообщает, настроен ли запуск HTTPS сервера.
func (c *Config) IsHTTPSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
