package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

func newOrder(customerID string, createdAt time.Time) domain.Order {
	return domain.Order{
		CustomerID:   customerID,
		CustomerName: "Ivan",
		TotalCost:    25,
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "book", Quantity: 2, UnitPrice: 10},
			{ProductID: "p2", Name: "pen", Quantity: 1, UnitPrice: 5},
		},
		Payment: domain.PaymentOutcome{
			Status:        domain.PaymentStatusCompleted,
			TransactionID: "TX-1",
		},
		CreatedAt: createdAt,
	}
}

func TestOrderRepository_CreateAssignsID(t *testing.T) {
	repo := memory.NewOrderRepository()

	id, err := repo.Create(newOrder("customer-1", time.Now().UTC()))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty order id")
	}

	stored, err := repo.Get(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ID != id {
		t.Fatalf("expected id %s, got %s", id, stored.ID)
	}
	if stored.Payment.TransactionID != "TX-1" {
		t.Fatalf("expected payment preserved, got %+v", stored.Payment)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}
}

func TestOrderRepository_CreateDistinctIDs(t *testing.T) {
	repo := memory.NewOrderRepository()
	now := time.Now().UTC()

	first, err := repo.Create(newOrder("customer-1", now))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := repo.Create(newOrder("customer-1", now))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, both were %s", first)
	}
}

func TestOrderRepository_GetNotFound(t *testing.T) {
	repo := memory.NewOrderRepository()

	_, err := repo.Get("missing")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	repo := memory.NewOrderRepository()
	now := time.Now().UTC()

	older, err := repo.Create(newOrder("customer-1", now.Add(-time.Hour)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	newer, err := repo.Create(newOrder("customer-1", now))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(newOrder("customer-2", now)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	orders, err := repo.ListByCustomer("customer-1", 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != newer || orders[1].ID != older {
		t.Fatalf("expected newest-first order, got %s, %s", orders[0].ID, orders[1].ID)
	}

	limited, err := repo.ListByCustomer("customer-1", 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newer {
		t.Fatalf("expected only newest order, got %+v", limited)
	}
}

func TestTimelineRepository_AppendList(t *testing.T) {
	repo := memory.NewTimelineRepository()
	now := time.Now().UTC()

	events := []domain.TimelineEvent{
		{OrderID: "order-1", Type: domain.TimelineInventoryConfirmed, Occurred: now},
		{OrderID: "order-1", Type: domain.TimelinePaymentAttempted, Reason: "completed", Occurred: now.Add(time.Millisecond)},
		{OrderID: "order-2", Type: domain.TimelineOrderPersisted, Occurred: now},
	}
	for _, e := range events {
		if err := repo.Append(e); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	got, err := repo.List("order-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != domain.TimelineInventoryConfirmed || got[1].Type != domain.TimelinePaymentAttempted {
		t.Fatalf("expected chronological order, got %+v", got)
	}
}
