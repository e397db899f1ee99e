package domain

// PaymentStatus описывает исход платежа, как его сообщает платёжный сервис.
type PaymentStatus string

const (
	// PaymentStatusPending — платёж принят, но ещё не подтверждён
	// (например, оплата при получении).
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusCompleted — деньги успешно списаны.
	PaymentStatusCompleted PaymentStatus = "completed"
	// PaymentStatusFailed — провайдер отклонил платёж либо сервис
	// оказался недоступен. Это штатный исход, а не исключение.
	PaymentStatusFailed PaymentStatus = "failed"
)

// Способы оплаты, которые понимает платёжный сервис.
const (
	PaymentMethodCOD  = "cod"
	PaymentMethodCard = "card"
	PaymentMethodBank = "bank"
)

// IsValidPaymentMethod проверяет способ оплаты до обращения к провайдеру.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodBank:
		return true
	default:
		return false
	}
}

// PaymentOutcome — результат одной попытки оплаты. Оркестратор принимает
// любой исход, включая failed, и переносит его в запись заказа.
type PaymentOutcome struct {
	Status PaymentStatus
	// TransactionID пуст, если провайдер не вернул идентификатор
	// (в частности, при неуспешном платеже).
	TransactionID string
	Message       string
}

// ChargeRequest — данные для единственного платёжного вызова по заказу.
// Ссылочный идентификатор заказа генерирует сам платёжный клиент
// (idempotency-relevant reference; дедупликация не реализована).
type ChargeRequest struct {
	CustomerID   string
	CustomerName string
	Amount       float64
	Method       string
	Details      map[string]string
}
