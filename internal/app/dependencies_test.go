package app

import (
	"context"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewDependencies_MemoryWithMocks(t *testing.T) {
	logger := log.WithField("test", "dependencies")

	deps, err := NewDependencies(context.Background(), DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps.Close()

	if deps.Orders == nil {
		t.Error("Orders should not be nil")
	}
	if deps.Timeline == nil {
		t.Error("Timeline should not be nil")
	}
	if deps.Inventory == nil {
		t.Error("Inventory should not be nil")
	}
	if deps.Payments == nil {
		t.Error("Payments should not be nil")
	}
	if deps.Shipping == nil {
		t.Error("Shipping should not be nil")
	}
	if deps.Store != nil {
		t.Error("Store must be nil for memory driver")
	}
	if deps.Logger == nil {
		t.Error("Logger should not be nil")
	}
}

func TestNewDependencies_WithNilLogger(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps.Close()

	if deps.Logger == nil {
		t.Error("Logger should be initialized even when nil is passed")
	}
}

func TestNewDependencies_HTTPClients(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CatalogBaseURL = "http://catalog:5000"
	cfg.PaymentBaseURL = "http://payment:5001"
	cfg.ShippingBaseURL = "http://shipping:5002"

	deps, err := NewDependencies(context.Background(), cfg, log.WithField("test", "clients"))
	if err != nil {
		t.Fatalf("NewDependencies failed: %v", err)
	}
	defer deps.Close()

	if deps.Inventory == nil || deps.Payments == nil || deps.Shipping == nil {
		t.Fatal("all external service clients must be initialized")
	}
}

func TestNewDependencies_UnsupportedDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "cassandra"

	_, err := NewDependencies(context.Background(), cfg, nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported storage driver") {
		t.Fatalf("expected unsupported storage driver error, got %v", err)
	}
}

func TestDependencies_CloseNilSafe(t *testing.T) {
	var deps *Dependencies
	deps.Close()

	deps = &Dependencies{Logger: log.WithField("test", "close")}
	deps.Close()
}
