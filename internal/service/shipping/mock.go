package shipping

import (
	"context"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// MockService — конфигурируемая заглушка ShippingService для тестов и
// локальной разработки.
type MockService struct {
	Result domain.ShipmentResult

	ShipCalls int
	LastShip  domain.ShipmentRequest
}

// NewMockService возвращает mock с принятой доставкой по умолчанию.
func NewMockService() *MockService {
	return &MockService{
		Result: domain.ShipmentResult{
			Status: domain.ShipmentStatusAccepted,
			Detail: "shipped (mock)",
		},
	}
}

// Ship возвращает заранее настроенный результат и запоминает запрос.
func (m *MockService) Ship(_ context.Context, req domain.ShipmentRequest) domain.ShipmentResult {
	m.ShipCalls++
	m.LastShip = req
	return m.Result
}

var _ domain.ShippingService = (*MockService)(nil)
