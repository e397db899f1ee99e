package domain

import "context"

// InventoryService описывает проверку доступности товара в каталоге.
type InventoryService interface {
	// CheckAvailable подтверждает, что товар доступен в запрошенном
	// количестве. Любая транспортная ошибка или таймаут трактуется как
	// недоступность (fail-closed): заказ не должен проходить по проверке,
	// которую нельзя подтвердить.
	CheckAvailable(ctx context.Context, productID string, quantity int32) bool
}

// PaymentService описывает взаимодействие с платёжным провайдером.
type PaymentService interface {
	// Charge выполняет единственное списание на сумму заказа. Ошибки не
	// возвращаются: недоступность провайдера сворачивается в исход
	// со статусом failed, который оркестратор обязан обработать.
	Charge(ctx context.Context, req ChargeRequest) PaymentOutcome
}

// ShippingService описывает взаимодействие со службой доставки.
type ShippingService interface {
	// Ship запрашивает отправление для уже сохранённого заказа.
	// Неуспех не откатывает ни платёж, ни запись заказа.
	Ship(ctx context.Context, req ShipmentRequest) ShipmentResult
}

// Compensator — точка расширения для компенсирующих действий (возврат
// платежа при неуспешной доставке и т.п.). В исходной системе компенсаций
// нет, поэтому рабочая реализация — no-op; интерфейс позволяет добавить их,
// не трогая happy path оркестратора.
type Compensator interface {
	// Compensate вызывается после неуспешной доставки уже сохранённого
	// и оплаченного заказа.
	Compensate(ctx context.Context, order Order, shipment ShipmentResult) error
}
