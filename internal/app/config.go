package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Поддерживаемые драйверы хранилища заказов.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
// Все значения переопределяются переменными окружения CHECKOUT_*.
type Config struct {
	// APIAddr — адрес входящего HTTP API.
	APIAddr string
	// MetricsAddr — адрес сервера метрик и health-проверок.
	MetricsAddr string
	// RequestTimeout — общий таймаут обработки одного HTTP-запроса.
	RequestTimeout time.Duration

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// Базовые URL внешних сервисов. Пустое значение означает mock-режим
	// для локальной разработки.
	CatalogBaseURL  string
	PaymentBaseURL  string
	ShippingBaseURL string

	InventoryTimeout time.Duration
	PaymentTimeout   time.Duration
	ShippingTimeout  time.Duration

	// KafkaBrokers — список брокеров через запятую; пустое значение
	// отключает публикацию событий.
	KafkaBrokers string

	// ShipOnPaymentFailure — запрашивать ли доставку при неуспешной оплате.
	ShipOnPaymentFailure bool
}

// DefaultConfig возвращает настройки по умолчанию для локального запуска.
func DefaultConfig() Config {
	return Config{
		APIAddr:              ":8080",
		MetricsAddr:          ":9090",
		RequestTimeout:       30 * time.Second,
		StorageDriver:        StorageDriverMemory,
		PostgresAutoMigrate:  true,
		InventoryTimeout:     5 * time.Second,
		PaymentTimeout:       10 * time.Second,
		ShippingTimeout:      5 * time.Second,
		ShipOnPaymentFailure: true,
	}
}

// LoadConfigFromEnv собирает конфигурацию из окружения поверх значений
// по умолчанию.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.APIAddr = envString("CHECKOUT_API_ADDR", cfg.APIAddr)
	cfg.MetricsAddr = envString("CHECKOUT_METRICS_ADDR", cfg.MetricsAddr)
	cfg.RequestTimeout = envDuration("CHECKOUT_REQUEST_TIMEOUT", cfg.RequestTimeout)

	cfg.StorageDriver = envString("CHECKOUT_STORAGE_DRIVER", cfg.StorageDriver)
	cfg.PostgresDSN = envString("CHECKOUT_POSTGRES_DSN", cfg.PostgresDSN)
	cfg.PostgresAutoMigrate = envBool("CHECKOUT_POSTGRES_AUTO_MIGRATE", cfg.PostgresAutoMigrate)

	cfg.CatalogBaseURL = envString("CHECKOUT_CATALOG_URL", cfg.CatalogBaseURL)
	cfg.PaymentBaseURL = envString("CHECKOUT_PAYMENT_URL", cfg.PaymentBaseURL)
	cfg.ShippingBaseURL = envString("CHECKOUT_SHIPPING_URL", cfg.ShippingBaseURL)

	cfg.InventoryTimeout = envDuration("CHECKOUT_INVENTORY_TIMEOUT", cfg.InventoryTimeout)
	cfg.PaymentTimeout = envDuration("CHECKOUT_PAYMENT_TIMEOUT", cfg.PaymentTimeout)
	cfg.ShippingTimeout = envDuration("CHECKOUT_SHIPPING_TIMEOUT", cfg.ShippingTimeout)

	cfg.KafkaBrokers = envString("CHECKOUT_KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.ShipOnPaymentFailure = envBool("CHECKOUT_SHIP_ON_PAYMENT_FAILURE", cfg.ShipOnPaymentFailure)

	return cfg
}

func envString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
