package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerIDRequired = errors.New("customerid is required")
	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customername is required")
	// Ошибка отсутствующего адреса доставки.
	ErrShippingAddressRequired = errors.New("shipping_address is required")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующего идентификатора товара в позиции.
	ErrProductIDRequired = errors.New("item product id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQuantityInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка отрицательной цены позиции.
	ErrItemPriceInvalid = errors.New("item unit price must be non-negative")
	// Ошибка неизвестного способа оплаты.
	ErrPaymentMethodInvalid = errors.New("payment method must be one of cod, card, bank")

	// ErrInvalidRequest — обобщённая причина отклонения некорректного запроса.
	ErrInvalidRequest = errors.New("invalid order request")
	// ErrInventoryUnavailable — позиция не подтверждена каталогом
	// (включая транспортные ошибки: fail-closed).
	ErrInventoryUnavailable = errors.New("inventory unavailable")
	// ErrStorageFailure — сохранение заказа не удалось; фатально для запроса.
	ErrStorageFailure = errors.New("order storage failure")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
)

// RejectionError — ошибка, из-за которой запрос отклоняется до каких-либо
// побочных эффектов (эквивалент HTTP 400). Reason — одна из причин таксономии
// (ErrInvalidRequest, ErrInventoryUnavailable), Detail — сообщение для клиента.
type RejectionError struct {
	Reason error
	Detail string
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason.Error(), e.Detail)
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

// NewRejection создаёт RejectionError с форматированным сообщением.
func NewRejection(reason error, format string, args ...any) *RejectionError {
	return &RejectionError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// IsRejection сообщает, является ли ошибка отклонением клиентского запроса.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}
