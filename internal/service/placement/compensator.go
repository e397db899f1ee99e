package placement

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// noopCompensator — точка расширения для отката платежа при сбое доставки.
// Сейчас откат не выполняется: заказ уже сохранён, списание не отменяется,
// сбой доставки фиксируется в хронологии и ответе клиенту.
type noopCompensator struct {
	logger *log.Entry
}

// NewNoopCompensator возвращает компенсатор, который только логирует факт.
func NewNoopCompensator(logger *log.Entry) domain.Compensator {
	if logger == nil {
		logger = log.New().WithField("component", "compensator")
	}
	return &noopCompensator{logger: logger}
}

func (c *noopCompensator) Compensate(_ context.Context, order domain.Order, shipment domain.ShipmentResult) error {
	c.logger.WithFields(log.Fields{
		"order_id":       order.ID,
		"payment_status": order.Payment.Status,
		"shipment":       shipment.Status,
	}).Info("no compensation configured, order kept as-is")
	return nil
}
