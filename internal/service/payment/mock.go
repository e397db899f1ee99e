package payment

import (
	"context"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// MockService — конфигурируемая заглушка PaymentService для тестов и
// локальной разработки.
type MockService struct {
	Outcome domain.PaymentOutcome

	ChargeCalls int
	LastCharge  domain.ChargeRequest
}

// NewMockService возвращает mock с успешным платежом по умолчанию.
func NewMockService() *MockService {
	return &MockService{
		Outcome: domain.PaymentOutcome{
			Status:        domain.PaymentStatusCompleted,
			TransactionID: "MOCK-1",
			Message:       "Payment completed (mock)",
		},
	}
}

// Charge возвращает заранее настроенный исход и запоминает запрос.
func (m *MockService) Charge(_ context.Context, req domain.ChargeRequest) domain.PaymentOutcome {
	m.ChargeCalls++
	m.LastCharge = req
	return m.Outcome
}

var _ domain.PaymentService = (*MockService)(nil)
