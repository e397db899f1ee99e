package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/inventory"
	"github.com/vladislavdragonenkov/checkout/internal/service/payment"
	"github.com/vladislavdragonenkov/checkout/internal/service/shipping"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
	"github.com/vladislavdragonenkov/checkout/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Orders    domain.OrderRepository
	Timeline  domain.TimelineRepository
	Inventory domain.InventoryService
	Payments  domain.PaymentService
	Shipping  domain.ShippingService
	// Store отличен от nil только при драйвере postgres.
	Store  *postgres.Store
	Logger *log.Entry
}

// NewDependencies создаёт хранилище и клиентов внешних сервисов по конфигу.
// Пустой базовый URL сервиса включает mock-режим для локальной разработки.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		deps.Orders = memory.NewOrderRepository()
		deps.Timeline = memory.NewTimelineRepository()
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		deps.Store = store
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Timeline = postgres.NewTimelineRepository(store)
		logger.Info("postgres storage initialized")
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}

	if cfg.CatalogBaseURL != "" {
		deps.Inventory = inventory.NewClient(cfg.CatalogBaseURL, cfg.InventoryTimeout, logger.WithField("client", "inventory"))
	} else {
		logger.Warn("catalog url is not set, using mock inventory service")
		deps.Inventory = inventory.NewMockService()
	}

	if cfg.PaymentBaseURL != "" {
		deps.Payments = payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentTimeout, logger.WithField("client", "payment"))
	} else {
		logger.Warn("payment url is not set, using mock payment service")
		deps.Payments = payment.NewMockService()
	}

	if cfg.ShippingBaseURL != "" {
		deps.Shipping = shipping.NewClient(cfg.ShippingBaseURL, cfg.ShippingTimeout, logger.WithField("client", "shipping"))
	} else {
		logger.Warn("shipping url is not set, using mock shipping service")
		deps.Shipping = shipping.NewMockService()
	}

	return deps, nil
}

// Close освобождает ресурсы зависимостей.
func (d *Dependencies) Close() {
	if d == nil {
		return
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
