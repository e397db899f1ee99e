package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Client — HTTP-клиент службы доставки. Вызывается только после того,
// как заказ сохранён: неуспех доставки не теряет запись заказа и ничего
// не откатывает.
type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
	logger  *log.Entry
}

// NewClient создаёт клиент службы доставки.
func NewClient(baseURL string, timeout time.Duration, logger *log.Entry) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.WithField("component", "shipping-client")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type shipPayload struct {
	OrderID         string        `json:"order_id"`
	CustomerID      string        `json:"customer_id"`
	Products        []shipProduct `json:"products"`
	ShippingAddress string        `json:"shipping_address"`
}

type shipProduct struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int32   `json:"quantity"`
	Price    float64 `json:"price"`
}

// Ship выполняет POST /ship для сохранённого заказа.
func (c *Client) Ship(ctx context.Context, req domain.ShipmentRequest) domain.ShipmentResult {
	products := make([]shipProduct, 0, len(req.Items))
	for _, item := range req.Items {
		products = append(products, shipProduct{
			ID:       item.ProductID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}

	body, err := json.Marshal(shipPayload{
		OrderID:         req.OrderID,
		CustomerID:      req.CustomerID,
		Products:        products,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return failedResult("encode shipping request: " + err.Error())
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/ship", bytes.NewReader(body))
	if err != nil {
		return failedResult("build shipping request: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).WithField("order_id", req.OrderID).Warn("shipping service unreachable")
		return failedResult(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.logger.WithFields(log.Fields{
			"order_id": req.OrderID,
			"status":   resp.StatusCode,
		}).Warn("shipping service returned non-ok status")
		return failedResult(strings.TrimSpace(string(raw)))
	}

	var decoded struct {
		Status string `json:"status"`
	}
	detail := "shipment accepted"
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil && decoded.Status != "" {
		detail = decoded.Status
	}

	c.logger.WithField("order_id", req.OrderID).Info("shipping requested")

	return domain.ShipmentResult{
		Status: domain.ShipmentStatusAccepted,
		Detail: detail,
	}
}

func failedResult(detail string) domain.ShipmentResult {
	return domain.ShipmentResult{
		Status: domain.ShipmentStatusFailed,
		Detail: detail,
	}
}

var _ domain.ShippingService = (*Client)(nil)
