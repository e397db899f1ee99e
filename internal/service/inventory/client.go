package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Client — HTTP-клиент сервиса каталога. Семантика fail-closed: любая
// ошибка транспорта, таймаут или не-2xx ответ трактуются как недоступность
// товара, а не пробрасываются наверх.
type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
	logger  *log.Entry
}

// NewClient создаёт клиент каталога. baseURL — корень сервиса
// (например, http://product-service:8000).
func NewClient(baseURL string, timeout time.Duration, logger *log.Entry) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.WithField("component", "inventory-client")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// CheckAvailable запрашивает GET /inventory/{product_id}?quantity=N.
func (c *Client) CheckAvailable(ctx context.Context, productID string, quantity int32) bool {
	endpoint := fmt.Sprintf("%s/inventory/%s?quantity=%d", c.baseURL, url.PathEscape(productID), quantity)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.WithError(err).WithField("product_id", productID).Warn("failed to build inventory request")
		return false
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("product_id", productID).Warn("inventory check failed, treating as unavailable")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(log.Fields{
			"product_id": productID,
			"status":     resp.StatusCode,
		}).Warn("inventory check returned non-ok status, treating as unavailable")
		return false
	}

	var body struct {
		Available bool `json:"available"`
		Stock     int  `json:"stock"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.WithError(err).WithField("product_id", productID).Warn("failed to decode inventory response, treating as unavailable")
		return false
	}

	c.logger.WithFields(log.Fields{
		"product_id": productID,
		"available":  body.Available,
	}).Debug("checked inventory")

	return body.Available
}

var _ domain.InventoryService = (*Client)(nil)
