package domain

// OrderRepository описывает требования к хранилищу заказов.
// Хранилище append-only с точки зрения оформления: заказы не обновляются
// и не удаляются. Повторная вставка идентичного содержимого допустима и
// даёт новый идентификатор (дедупликации нет).
type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями и возвращает присвоенный
	// идентификатор.
	Create(order Order) (string, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента, свежие первыми,
	// с опциональным ограничением количества.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}

// TimelineRepository хранит события этапов оформления по каждому заказу.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID string) ([]TimelineEvent, error)
}
