package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

func shipReq() domain.ShipmentRequest {
	return domain.ShipmentRequest{
		OrderID:         "order-1",
		CustomerID:      "customer-1",
		ShippingAddress: "Tverskaya, 1, Moscow",
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "Widget", Quantity: 2, UnitPrice: 10.0},
		},
	}
}

func TestClient_Ship_Accepted(t *testing.T) {
	var captured shipPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ship" {
			t.Errorf("expected /ship, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"status":"shipped","shipment_id":"abc"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	result := client.Ship(context.Background(), shipReq())

	if result.Status != domain.ShipmentStatusAccepted {
		t.Fatalf("expected accepted, got %s", result.Status)
	}
	if result.Detail != "shipped" {
		t.Fatalf("expected detail from service, got %q", result.Detail)
	}
	if captured.OrderID != "order-1" {
		t.Fatalf("expected order id order-1, got %s", captured.OrderID)
	}
	if len(captured.Products) != 1 || captured.Products[0].ID != "p1" {
		t.Fatalf("expected product p1 in payload, got %+v", captured.Products)
	}
}

func TestClient_Ship_NonOkStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"no couriers"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	result := client.Ship(context.Background(), shipReq())

	if result.Status != domain.ShipmentStatusFailed {
		t.Fatalf("expected failed, got %s", result.Status)
	}
	if result.Detail == "" {
		t.Fatal("expected cause in detail")
	}
}

func TestClient_Ship_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	result := client.Ship(context.Background(), shipReq())

	if result.Status != domain.ShipmentStatusFailed {
		t.Fatalf("expected failed, got %s", result.Status)
	}
}
