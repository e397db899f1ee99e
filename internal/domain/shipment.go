package domain

// ShipmentStatus описывает исход обращения к службе доставки.
type ShipmentStatus string

const (
	// ShipmentStatusAccepted — служба доставки приняла отправление.
	ShipmentStatusAccepted ShipmentStatus = "accepted"
	// ShipmentStatusFailed — транспортная ошибка или отказ сервиса.
	// Заказ и платёж к этому моменту уже зафиксированы и не откатываются.
	ShipmentStatusFailed ShipmentStatus = "failed"
	// ShipmentStatusSkipped — доставка не запрашивалась из-за политики
	// ship-on-payment-failure.
	ShipmentStatusSkipped ShipmentStatus = "skipped"
)

// ShipmentResult — результат запроса доставки. Возвращается вызывающему,
// но не сохраняется в хранилище заказов.
type ShipmentResult struct {
	Status ShipmentStatus
	Detail string
}

// ShipmentRequest — данные для службы доставки. Отправляется только после
// того, как заказ сохранён и у него есть идентификатор.
type ShipmentRequest struct {
	OrderID         string
	CustomerID      string
	Items           []LineItem
	ShippingAddress string
}
