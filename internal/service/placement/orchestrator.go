package placement

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/checkout/internal/metrics"
)

// Orchestrator описывает оформление заказа через внешние сервисы.
type Orchestrator interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (Result, error)
}

// Result — составной ответ оформления: исход платежа, идентификатор
// сохранённого заказа и результат запроса доставки. Возвращается целиком,
// даже если платёж или доставка неуспешны, — ошибкой завершаются только
// отклонение запроса и сбой хранилища.
type Result struct {
	OrderID  string
	Payment  domain.PaymentOutcome
	Shipment domain.ShipmentResult
}

// Policy — настраиваемые точки бизнес-логики оформления.
type Policy struct {
	// ShipOnPaymentFailure сохраняет поведение исходной системы: доставка
	// запрашивается даже при неуспешной оплате. Отключение помечает
	// доставку как skipped вместо вызова службы.
	ShipOnPaymentFailure bool
}

// DefaultPolicy повторяет поведение исходной системы.
func DefaultPolicy() Policy {
	return Policy{ShipOnPaymentFailure: true}
}

// orchestrator последовательно проходит этапы
// Validating → CheckingInventory → Charging → Persisting → Shipping.
type orchestrator struct {
	orders      domain.OrderRepository
	timeline    domain.TimelineRepository
	inventory   domain.InventoryService
	payments    domain.PaymentService
	shipping    domain.ShippingService
	compensator domain.Compensator
	policy      Policy
	logger      *log.Entry
	metrics     *metrics.PlacementMetrics
	producer    *kafka.Producer // опциональный Kafka producer для событий заказов
}

// NewOrchestrator создаёт рабочий экземпляр оркестратора.
func NewOrchestrator(
	orders domain.OrderRepository,
	timeline domain.TimelineRepository,
	inventory domain.InventoryService,
	payments domain.PaymentService,
	shipping domain.ShippingService,
	policy Policy,
	logger *log.Entry,
) *orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "placement")
	}
	return &orchestrator{
		orders:      orders,
		timeline:    timeline,
		inventory:   inventory,
		payments:    payments,
		shipping:    shipping,
		compensator: NewNoopCompensator(logger),
		policy:      policy,
		logger:      logger,
		metrics:     metrics.NewPlacementMetrics(),
	}
}

// NewOrchestratorWithKafka создаёт оркестратор, публикующий события заказов.
func NewOrchestratorWithKafka(
	orders domain.OrderRepository,
	timeline domain.TimelineRepository,
	inventory domain.InventoryService,
	payments domain.PaymentService,
	shipping domain.ShippingService,
	policy Policy,
	producer *kafka.Producer,
	logger *log.Entry,
) *orchestrator {
	o := NewOrchestrator(orders, timeline, inventory, payments, shipping, policy, logger)
	o.producer = producer
	return o
}

// NewOrchestratorWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewOrchestratorWithoutMetrics(
	orders domain.OrderRepository,
	timeline domain.TimelineRepository,
	inventory domain.InventoryService,
	payments domain.PaymentService,
	shipping domain.ShippingService,
	policy Policy,
	logger *log.Entry,
) *orchestrator {
	o := NewOrchestrator(orders, timeline, inventory, payments, shipping, policy, logger)
	o.metrics = nil
	return o
}

// UseCompensator подменяет компенсатор (по умолчанию — no-op).
func (o *orchestrator) UseCompensator(c domain.Compensator) {
	if c != nil {
		o.compensator = c
	}
}

// PlaceOrder выполняет полный цикл оформления одного заказа.
func (o *orchestrator) PlaceOrder(ctx context.Context, req domain.OrderRequest) (Result, error) {
	start := time.Now()
	if o.metrics != nil {
		o.metrics.RecordPlacementStarted()
	}
	defer func() {
		if o.metrics != nil {
			o.metrics.RecordPlacementFinished()
			o.metrics.RecordPlacementDuration(time.Since(start))
		}
	}()

	// Validating: никакие внешние вызовы до полной проверки запроса.
	if errs := req.Validate(); len(errs) > 0 {
		if o.metrics != nil {
			o.metrics.RecordRejected(metrics.RejectInvalidRequest)
		}
		return Result{}, &domain.RejectionError{
			Reason: domain.ErrInvalidRequest,
			Detail: joinErrors(errs),
		}
	}

	// CheckingInventory: позиции проверяются последовательно в порядке
	// запроса, первая неподтверждённая обрывает весь поток — клиент не
	// платит, если хоть одна позиция недоступна.
	if err := o.checkInventory(ctx, req); err != nil {
		return Result{}, err
	}

	// Дальше запрос уже не отменяется: платёж, сохранение и доставка
	// должны завершиться даже при отключении клиента — откатывать
	// полузавершённый поток нечем.
	dctx := context.WithoutCancel(ctx)

	outcome := o.charge(dctx, req)

	order, err := o.persist(dctx, req, outcome)
	if err != nil {
		return Result{}, err
	}

	shipment := o.ship(dctx, order, req.ShippingAddress)

	if o.metrics != nil {
		o.metrics.RecordOrderPlaced()
	}
	o.logger.WithFields(log.Fields{
		"order_id":       order.ID,
		"payment_status": order.Payment.Status,
		"shipping":       shipment.Status,
	}).Info("order placed")

	return Result{
		OrderID:  order.ID,
		Payment:  order.Payment,
		Shipment: shipment,
	}, nil
}

func (o *orchestrator) checkInventory(ctx context.Context, req domain.OrderRequest) error {
	stageStart := time.Now()
	defer func() {
		if o.metrics != nil {
			o.metrics.RecordStageDuration(metrics.StageInventory, time.Since(stageStart))
		}
	}()

	for _, item := range req.Items {
		if !o.inventory.CheckAvailable(ctx, item.ProductID, item.Quantity) {
			o.logger.WithFields(log.Fields{
				"customer_id": req.CustomerID,
				"product_id":  item.ProductID,
			}).Warn("inventory check failed, rejecting order")
			if o.metrics != nil {
				o.metrics.RecordRejected(metrics.RejectInventory)
			}
			return domain.NewRejection(domain.ErrInventoryUnavailable,
				"product %s is not available in requested quantity", item.ProductID)
		}
	}
	return nil
}

func (o *orchestrator) charge(ctx context.Context, req domain.OrderRequest) domain.PaymentOutcome {
	stageStart := time.Now()

	outcome := o.payments.Charge(ctx, domain.ChargeRequest{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Amount:       req.TotalCost(),
		Method:       req.EffectiveMethod(),
		Details:      req.PaymentDetails,
	})

	if o.metrics != nil {
		o.metrics.RecordStageDuration(metrics.StageCharge, time.Since(stageStart))
		if outcome.Status == domain.PaymentStatusFailed {
			o.metrics.RecordPaymentFailure()
		}
	}
	if outcome.Status == domain.PaymentStatusFailed {
		// Не фатально: заказ сохраняется с неуспешным платежом, чтобы
		// остался след даже у неоплаченных заказов.
		o.logger.WithField("customer_id", req.CustomerID).Warn("payment failed, continuing to persist")
	}

	return outcome
}

func (o *orchestrator) persist(ctx context.Context, req domain.OrderRequest, outcome domain.PaymentOutcome) (domain.Order, error) {
	stageStart := time.Now()

	order := domain.Order{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Items:        req.Items,
		TotalCost:    req.TotalCost(),
		Payment:      outcome,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := o.orders.Create(order)
	if o.metrics != nil {
		o.metrics.RecordStageDuration(metrics.StagePersist, time.Since(stageStart))
	}
	if err != nil {
		if o.metrics != nil {
			o.metrics.RecordStorageFailure()
		}
		o.logger.WithError(err).Error("failed to persist order")
		return domain.Order{}, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	order.ID = id

	o.emitTimeline(order.ID, domain.TimelineInventoryConfirmed, "")
	o.emitTimeline(order.ID, domain.TimelinePaymentAttempted, string(outcome.Status))
	o.emitTimeline(order.ID, domain.TimelineOrderPersisted, "")

	if outcome.Status == domain.PaymentStatusFailed {
		o.publishOrderEvent(kafka.EventTypeOrderPaymentFailed, order, map[string]interface{}{
			"message": outcome.Message,
		})
	}
	o.publishOrderEvent(kafka.EventTypeOrderPlaced, order, map[string]interface{}{
		"total_cost": order.TotalCost,
	})

	return order, nil
}

func (o *orchestrator) ship(ctx context.Context, order domain.Order, address string) domain.ShipmentResult {
	if !o.policy.ShipOnPaymentFailure && order.Payment.Status == domain.PaymentStatusFailed {
		o.emitTimeline(order.ID, domain.TimelineShipmentSkipped, "payment not completed")
		return domain.ShipmentResult{
			Status: domain.ShipmentStatusSkipped,
			Detail: "shipping skipped: payment failed",
		}
	}

	stageStart := time.Now()
	shipment := o.shipping.Ship(ctx, domain.ShipmentRequest{
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		Items:           order.Items,
		ShippingAddress: address,
	})
	if o.metrics != nil {
		o.metrics.RecordStageDuration(metrics.StageShip, time.Since(stageStart))
	}

	switch shipment.Status {
	case domain.ShipmentStatusFailed:
		if o.metrics != nil {
			o.metrics.RecordShipmentFailure()
		}
		o.emitTimeline(order.ID, domain.TimelineShipmentFailed, shipment.Detail)
		o.publishOrderEvent(kafka.EventTypeOrderShippingFailed, order, map[string]interface{}{
			"detail": shipment.Detail,
		})
		if err := o.compensator.Compensate(ctx, order, shipment); err != nil {
			o.logger.WithError(err).WithField("order_id", order.ID).Warn("compensation failed")
		}
	default:
		o.emitTimeline(order.ID, domain.TimelineShipmentRequested, "")
		o.publishOrderEvent(kafka.EventTypeOrderShipped, order, nil)
	}

	return shipment
}

func (o *orchestrator) emitTimeline(orderID, eventType, reason string) {
	if o.timeline == nil {
		return
	}
	event := domain.TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Reason:   reason,
		Occurred: time.Now().UTC(),
	}
	if err := o.timeline.Append(event); err != nil {
		o.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"event":    eventType,
		}).Warn("append timeline event failed")
	} else if o.metrics != nil {
		o.metrics.RecordTimelineEvent()
	}
}

// publishOrderEvent публикует событие заказа в Kafka (если producer настроен).
func (o *orchestrator) publishOrderEvent(eventType kafka.EventType, order domain.Order, metadata map[string]interface{}) {
	if o.producer == nil {
		return
	}

	event := kafka.NewOrderEvent(eventType, order.ID, order.CustomerID, string(order.Payment.Status), metadata)
	if err := o.producer.PublishOrderEvent(event); err != nil {
		// Доставка событий best-effort: ошибка публикации не влияет на ответ.
		o.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"order_id":   order.ID,
		}).Warn("failed to publish order event to kafka")
	}
}

func joinErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

var _ Orchestrator = (*orchestrator)(nil)
