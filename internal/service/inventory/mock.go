package inventory

import (
	"context"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// MockService — конфигурируемая заглушка InventoryService для тестов и
// локальной разработки.
type MockService struct {
	// Unavailable перечисляет товары, которые следует считать недоступными.
	Unavailable map[string]bool

	// Checked накапливает product_id проверенных позиций в порядке вызовов.
	Checked []string
}

// NewMockService возвращает mock, в котором всё доступно по умолчанию.
func NewMockService() *MockService {
	return &MockService{Unavailable: make(map[string]bool)}
}

// CheckAvailable считает вызовы и сверяется со списком недоступных товаров.
func (m *MockService) CheckAvailable(_ context.Context, productID string, _ int32) bool {
	m.Checked = append(m.Checked, productID)
	return !m.Unavailable[productID]
}

var _ domain.InventoryService = (*MockService)(nil)
