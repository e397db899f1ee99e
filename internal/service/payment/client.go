package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// У исходного сервиса таймаута на платёж не было вовсе; здесь вызов
// ограничен настраиваемым таймаутом с консервативным значением по умолчанию.
const defaultTimeout = 10 * time.Second

// Client — HTTP-клиент платёжного сервиса. Ошибки не возвращаются:
// недоступность провайдера или не-2xx ответ сворачиваются в исход
// со статусом failed, который оркестратор переносит в запись заказа.
type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
	logger  *log.Entry
}

// NewClient создаёт клиент платёжного сервиса.
func NewClient(baseURL string, timeout time.Duration, logger *log.Entry) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = log.WithField("component", "payment-client")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type chargePayload struct {
	OrderID        string            `json:"order_id"`
	CustomerID     string            `json:"customer_id"`
	Amount         float64           `json:"amount"`
	Method         string            `json:"method"`
	PaymentDetails map[string]string `json:"payment_details,omitempty"`
}

type chargeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

// Charge выполняет POST /pay с единственным платежом на сумму заказа.
// В запрос подставляется локально сгенерированная ссылка заказа — она
// позволит провайдеру дедуплицировать повторы, хотя дедупликация на нашей
// стороне не реализована.
func (c *Client) Charge(ctx context.Context, req domain.ChargeRequest) domain.PaymentOutcome {
	reference := "order-" + uuid.NewString()

	payload := chargePayload{
		OrderID:        reference,
		CustomerID:     req.CustomerID,
		Amount:         req.Amount,
		Method:         req.Method,
		PaymentDetails: req.Details,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return failedOutcome("encode payment request: " + err.Error())
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/pay", bytes.NewReader(body))
	if err != nil {
		return failedOutcome("build payment request: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).WithField("reference", reference).Warn("payment service unreachable")
		return failedOutcome(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.logger.WithFields(log.Fields{
			"reference": reference,
			"status":    resp.StatusCode,
		}).Warn("payment service returned non-ok status")
		return failedOutcome(strings.TrimSpace(string(raw)))
	}

	var decoded chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return failedOutcome("decode payment response: " + err.Error())
	}

	outcome := domain.PaymentOutcome{
		Status:        domain.PaymentStatus(decoded.Status),
		TransactionID: decoded.TransactionID,
		Message:       decoded.Message,
	}
	switch outcome.Status {
	case domain.PaymentStatusPending, domain.PaymentStatusCompleted, domain.PaymentStatusFailed:
	default:
		// Незнакомый статус провайдера не считаем успехом.
		outcome = failedOutcome("unexpected payment status: " + decoded.Status)
	}

	c.logger.WithFields(log.Fields{
		"reference": reference,
		"status":    outcome.Status,
	}).Info("payment attempted")

	return outcome
}

func failedOutcome(message string) domain.PaymentOutcome {
	return domain.PaymentOutcome{
		Status:  domain.PaymentStatusFailed,
		Message: message,
	}
}

var _ domain.PaymentService = (*Client)(nil)
