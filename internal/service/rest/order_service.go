package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/placement"
)

// OrderService — входящий HTTP API оформления заказов.
type OrderService struct {
	orchestrator placement.Orchestrator
	orders       domain.OrderRepository
	timeline     domain.TimelineRepository
	logger       *log.Entry
}

// NewOrderService создаёт HTTP-обработчики поверх оркестратора и хранилища.
func NewOrderService(
	orchestrator placement.Orchestrator,
	orders domain.OrderRepository,
	timeline domain.TimelineRepository,
	logger *log.Entry,
) *OrderService {
	if logger == nil {
		logger = log.New().WithField("component", "rest")
	}
	return &OrderService{
		orchestrator: orchestrator,
		orders:       orders,
		timeline:     timeline,
		logger:       logger,
	}
}

// Register вешает маршруты сервиса на роутер.
func (s *OrderService) Register(r chi.Router) {
	r.Post("/orders", s.PlaceOrder)
	r.Get("/orders", s.ListOrders)
	r.Get("/orders/{id}", s.GetOrder)
	r.Get("/orders/{id}/timeline", s.GetTimeline)
}

// placeOrderPayload — wire-формат запроса. Позиции приходят массивом
// кортежей [product_id, name, quantity, unit_price].
type placeOrderPayload struct {
	CustomerID      string            `json:"customerid"`
	CustomerName    string            `json:"customername"`
	Product         [][]interface{}   `json:"product"`
	ShippingAddress string            `json:"shipping_address"`
	Method          string            `json:"method,omitempty"`
	PaymentDetails  map[string]string `json:"payment_details,omitempty"`
}

type paymentView struct {
	Status        string  `json:"status"`
	TransactionID *string `json:"transaction_id"`
	Message       string  `json:"message"`
}

type shippingView struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type placeOrderResponse struct {
	Payment  paymentView  `json:"payment"`
	OrderID  string       `json:"order_id"`
	Shipping shippingView `json:"shipping"`
}

// PlaceOrder обрабатывает POST /orders: разбирает запрос, запускает
// оформление и возвращает составной результат. Неуспешные платёж и
// доставка возвращаются в теле 200, ошибкой являются только отклонение
// запроса (400) и сбой хранилища (500).
func (s *OrderService) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var payload placeOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	req, err := payload.toRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.orchestrator.PlaceOrder(r.Context(), req)
	if err != nil {
		if domain.IsRejection(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("order placement failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, placeOrderResponse{
		Payment:  toPaymentView(result.Payment),
		OrderID:  result.OrderID,
		Shipping: shippingView{Status: string(result.Shipment.Status), Detail: result.Shipment.Detail},
	})
}

// toRequest переводит wire-формат в доменный запрос. Структурные дефекты
// кортежей — это ошибка разбора (400), содержательную валидацию делает
// оркестратор.
func (p *placeOrderPayload) toRequest() (domain.OrderRequest, error) {
	items := make([]domain.LineItem, 0, len(p.Product))
	for _, tuple := range p.Product {
		if len(tuple) != 4 {
			return domain.OrderRequest{}, errors.New("product tuple must have exactly 4 elements: [id, name, quantity, price]")
		}
		id, ok := tuple[0].(string)
		if !ok {
			return domain.OrderRequest{}, errors.New("product id must be a string")
		}
		name, ok := tuple[1].(string)
		if !ok {
			return domain.OrderRequest{}, errors.New("product name must be a string")
		}
		qty, ok := tuple[2].(float64)
		if !ok || qty != float64(int32(qty)) {
			return domain.OrderRequest{}, errors.New("product quantity must be an integer")
		}
		price, ok := tuple[3].(float64)
		if !ok {
			return domain.OrderRequest{}, errors.New("product price must be a number")
		}
		items = append(items, domain.LineItem{
			ProductID: id,
			Name:      name,
			Quantity:  int32(qty),
			UnitPrice: price,
		})
	}

	return domain.OrderRequest{
		CustomerID:      p.CustomerID,
		CustomerName:    p.CustomerName,
		Items:           items,
		ShippingAddress: p.ShippingAddress,
		Method:          p.Method,
		PaymentDetails:  p.PaymentDetails,
	}, nil
}

type lineItemView struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int32   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type orderView struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	Items        []lineItemView `json:"items"`
	TotalCost    float64        `json:"total_cost"`
	Payment      paymentView    `json:"payment"`
	CreatedAt    time.Time      `json:"created_at"`
}

// GetOrder обрабатывает GET /orders/{id}.
func (s *OrderService) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := s.orders.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toOrderView(order))
}

// ListOrders обрабатывает GET /orders?customer_id=X&limit=N.
func (s *OrderService) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "customer_id is required")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}

	orders, err := s.orders.ListByCustomer(customerID, limit)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Error("failed to list orders")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": views})
}

type timelineEventView struct {
	Type     string    `json:"type"`
	Reason   string    `json:"reason,omitempty"`
	Occurred time.Time `json:"occurred"`
}

// GetTimeline обрабатывает GET /orders/{id}/timeline.
func (s *OrderService) GetTimeline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := s.orders.Get(id); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	events, err := s.timeline.List(id)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load timeline")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	views := make([]timelineEventView, 0, len(events))
	for _, e := range events {
		views = append(views, timelineEventView{Type: e.Type, Reason: e.Reason, Occurred: e.Occurred})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order_id": id, "events": views})
}

func toOrderView(order domain.Order) orderView {
	items := make([]lineItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return orderView{
		ID:           order.ID,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Items:        items,
		TotalCost:    order.TotalCost,
		Payment:      toPaymentView(order.Payment),
		CreatedAt:    order.CreatedAt,
	}
}

func toPaymentView(outcome domain.PaymentOutcome) paymentView {
	view := paymentView{
		Status:  string(outcome.Status),
		Message: outcome.Message,
	}
	if outcome.TransactionID != "" {
		view.TransactionID = &outcome.TransactionID
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
