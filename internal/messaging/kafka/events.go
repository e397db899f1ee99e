package kafka

import "time"

// EventType определяет тип события заказа.
type EventType string

const (
	// EventTypeOrderPlaced — заказ сохранён и получил идентификатор.
	EventTypeOrderPlaced EventType = "order.placed"
	// EventTypeOrderPaymentFailed — заказ сохранён с неуспешной оплатой.
	EventTypeOrderPaymentFailed EventType = "order.payment_failed"
	// EventTypeOrderShipped — служба доставки приняла отправление.
	EventTypeOrderShipped EventType = "order.shipped"
	// EventTypeOrderShippingFailed — запрос доставки не удался.
	EventTypeOrderShippingFailed EventType = "order.shipping_failed"
)

// Topic для событий заказов. Доставка best-effort: потребитель
// (notification-сервис) не участвует в обработке запроса.
const TopicOrderEvents = "checkout.order.events"

// OrderEvent представляет событие жизненного цикла заказа.
type OrderEvent struct {
	EventType  EventType              `json:"event_type"`
	OrderID    string                 `json:"order_id"`
	CustomerID string                 `json:"customer_id"`
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NewOrderEvent создает новое событие заказа.
func NewOrderEvent(eventType EventType, orderID, customerID, status string, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     status,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}
}
