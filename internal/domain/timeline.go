package domain

import "time"

// Типы событий этапов оформления заказа.
const (
	TimelineInventoryConfirmed = "InventoryConfirmed"
	TimelinePaymentAttempted   = "PaymentAttempted"
	TimelineOrderPersisted     = "OrderPersisted"
	TimelineShipmentRequested  = "ShipmentRequested"
	TimelineShipmentFailed     = "ShipmentFailed"
	TimelineShipmentSkipped    = "ShipmentSkipped"
)

// TimelineEvent описывает одно событие в ходе оформления заказа.
// Последовательность событий даёт аудит того, какие этапы были пройдены
// и с каким исходом, в том числе для заказов с неуспешной оплатой.
type TimelineEvent struct {
	OrderID  string
	Type     string
	Reason   string
	Occurred time.Time
}
