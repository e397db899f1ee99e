package domain

import "time"

// LineItem представляет одну позицию запроса на заказ.
// Конструируется один раз при разборе запроса и далее не изменяется.
type LineItem struct {
	// ProductID — внешний идентификатор товара в каталоге.
	ProductID string
	// Name — человекочитаемое название позиции.
	Name string
	// Quantity — количество единиц товара (> 0).
	Quantity int32
	// UnitPrice — цена за единицу. Дробные цены приходят с wire-формата,
	// поэтому храним float64, как и сумму заказа.
	UnitPrice float64
}

// OrderRequest — входящий запрос на оформление заказа.
// Живёт только в рамках одного вызова оркестратора.
type OrderRequest struct {
	CustomerID      string
	CustomerName    string
	Items           []LineItem
	ShippingAddress string
	// Method — способ оплаты (cod, card, bank). Пустое значение
	// интерпретируется как cod до валидации.
	Method string
	// PaymentDetails — опциональные реквизиты для платёжного сервиса.
	PaymentDetails map[string]string
}

// Validate проверяет инварианты запроса и возвращает список замечаний.
// Запрос с непустым списком замечаний отклоняется до любых внешних вызовов.
func (r *OrderRequest) Validate() []error {
	var errs []error

	if r.CustomerID == "" {
		errs = append(errs, ErrCustomerIDRequired)
	}
	if r.CustomerName == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if r.ShippingAddress == "" {
		errs = append(errs, ErrShippingAddressRequired)
	}
	if len(r.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	for _, item := range r.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrProductIDRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQuantityInvalid)
		}
		if item.UnitPrice < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}
	if !IsValidPaymentMethod(r.EffectiveMethod()) {
		errs = append(errs, ErrPaymentMethodInvalid)
	}

	return errs
}

// EffectiveMethod возвращает способ оплаты с учётом значения по умолчанию.
func (r *OrderRequest) EffectiveMethod() string {
	if r.Method == "" {
		return PaymentMethodCOD
	}
	return r.Method
}

// TotalCost считает сумму заказа: Σ quantity × unit_price.
func (r *OrderRequest) TotalCost() float64 {
	var total float64
	for _, item := range r.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// Order — зафиксированный заказ. Создаётся оркестратором после попытки
// оплаты; идентификатор присваивает хранилище при вставке. После создания
// заказ не изменяется.
type Order struct {
	ID           string
	CustomerID   string
	CustomerName string
	Items        []LineItem
	TotalCost    float64
	Payment      PaymentOutcome
	CreatedAt    time.Time
}
